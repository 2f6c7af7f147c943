package stats

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

type RecordsStats struct {
	Lines         int64
	ActiveLines   int64
	Vehicles      int64
	OpenIncidents int64
	ServiceAlerts int64

	UpdatedAt time.Time
}

var (
	currentRecordsStats = RecordsStats{}
	mutex               sync.RWMutex
)

func Current() RecordsStats {
	mutex.RLock()
	defer mutex.RUnlock()

	return currentRecordsStats
}

func countDocuments(collection string, filter bson.M) int64 {
	count, err := database.GetCollection(collection).CountDocuments(context.Background(), filter)
	if err != nil {
		log.Error().Err(err).Str("collection", collection).Msg("Failed to count records")
	}

	return count
}

func UpdateRecordsStats() {
	for {
		recordsStats := RecordsStats{
			Lines:         countDocuments("lines", bson.M{}),
			ActiveLines:   countDocuments("lines", bson.M{"status": ctdf.LineStatusActive}),
			Vehicles:      countDocuments("vehicles", bson.M{}),
			OpenIncidents: countDocuments("incidents", bson.M{"status": ctdf.IncidentStatusOpen}),
			ServiceAlerts: countDocuments("service_alerts", bson.M{}),
			UpdatedAt:     time.Now(),
		}

		mutex.Lock()
		currentRecordsStats = recordsStats
		mutex.Unlock()

		time.Sleep(1 * time.Minute)
	}
}
