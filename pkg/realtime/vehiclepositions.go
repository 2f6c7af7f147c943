package realtime

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/geo"
	"github.com/transitline/transitline/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"google.golang.org/protobuf/proto"
)

// Positions older than this are ignored
const maxPositionAge = 20 * time.Minute

type VehiclePositionsPoller struct {
	URL           string
	Interval      time.Duration
	TransportType ctdf.TransportType

	Client  *http.Client
	Metrics *metrics.Collector

	Write func(ctx context.Context, models []mongo.WriteModel) error
}

func NewVehiclePositionsPoller(url string, interval time.Duration, transportType ctdf.TransportType) *VehiclePositionsPoller {
	return &VehiclePositionsPoller{
		URL:           url,
		Interval:      interval,
		TransportType: transportType,
		Client:        &http.Client{Timeout: 30 * time.Second},
		Metrics:       metrics.Default,
		Write:         writeVehicles,
	}
}

func (p *VehiclePositionsPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		updated, err := p.Poll(ctx)
		if err != nil {
			log.Error().Err(err).Str("url", p.URL).Msg("Failed to update vehicle positions")

			if p.Metrics != nil {
				p.Metrics.VehicleFeedErrors.Inc()
			}
		} else {
			log.Info().Int("vehicles", updated).Msg("Updated vehicle positions")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll fetches the feed once and writes every usable vehicle position
func (p *VehiclePositionsPoller) Poll(ctx context.Context) (int, error) {
	feed, err := p.fetchFeed(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now()

	vehiclePool := pool.NewWithResults[*ctdf.Vehicle]().WithMaxGoroutines(10)
	for _, entity := range feed.GetEntity() {
		vehiclePool.Go(func() *ctdf.Vehicle {
			return VehicleFromEntity(entity, p.TransportType, now)
		})
	}

	var models []mongo.WriteModel
	for _, vehicle := range vehiclePool.Wait() {
		if vehicle == nil {
			continue
		}

		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"primaryidentifier": vehicle.PrimaryIdentifier}).
			SetUpdate(bson.M{"$set": vehicle}).
			SetUpsert(true))
	}

	if len(models) == 0 {
		return 0, nil
	}

	if err := p.Write(ctx, models); err != nil {
		return 0, err
	}

	if p.Metrics != nil {
		p.Metrics.VehiclePositionsUpdated.Add(float64(len(models)))
	}

	return len(models), nil
}

func (p *VehiclePositionsPoller) fetchFeed(ctx context.Context) (*gtfs.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("failed parsing GTFS-RT protobuf: %w", err)
	}

	return feed, nil
}

// VehicleFromEntity maps a GTFS-RT vehicle position, returning nil for entities without a usable position
func VehicleFromEntity(entity *gtfs.FeedEntity, transportType ctdf.TransportType, now time.Time) *ctdf.Vehicle {
	vehiclePosition := entity.GetVehicle()
	if vehiclePosition == nil || vehiclePosition.GetPosition() == nil {
		return nil
	}

	recordedAtTime := now
	if vehiclePosition.Timestamp != nil {
		recordedAtTime = time.Unix(int64(vehiclePosition.GetTimestamp()), 0)

		if now.Sub(recordedAtTime) > maxPositionAge {
			return nil
		}
	}

	position := vehiclePosition.GetPosition()
	point := geo.Point{
		Latitude:  float64(position.GetLatitude()),
		Longitude: float64(position.GetLongitude()),
	}
	if point.Validate() != nil {
		return nil
	}

	vehicleID := vehiclePosition.GetVehicle().GetId()
	if vehicleID == "" {
		vehicleID = entity.GetId()
	}

	vehicle := &ctdf.Vehicle{
		PrimaryIdentifier:    fmt.Sprintf(ctdf.VehicleIDFormat, vehicleID),
		ModificationDateTime: recordedAtTime,
		DataSource: &ctdf.DataSource{
			OriginalFormat: "GTFS-RT",
			Provider:       "GTFS-RT",
		},
		TransportType: transportType,
		Registration:  vehiclePosition.GetVehicle().GetLicensePlate(),
		Location:      ctdf.NewLocation(point),
		Bearing:       float64(position.GetBearing()),
		Status:        ctdf.VehicleStatusInService,
	}

	if routeID := vehiclePosition.GetTrip().GetRouteId(); routeID != "" {
		vehicle.LineRef = ctdf.LineIdentifier(transportType, routeID)
	}

	return vehicle
}

func writeVehicles(ctx context.Context, models []mongo.WriteModel) error {
	vehiclesCollection := database.GetCollection("vehicles")

	_, err := vehiclesCollection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))

	return err
}
