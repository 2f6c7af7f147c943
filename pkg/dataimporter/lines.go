package dataimporter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/geo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LineRecord is one stop of one line, lines are spread over consecutive rows
type LineRecord struct {
	Line          string  `csv:"line"`
	TransportType string  `csv:"transport_type"`
	Fare          float64 `csv:"fare"`
	Status        string  `csv:"status"`
	StopSequence  int     `csv:"stop_sequence"`
	StopName      string  `csv:"stop_name"`
	Latitude      float64 `csv:"latitude"`
	Longitude     float64 `csv:"longitude"`
}

// ParseLines groups the CSV rows into lines, keeping the order lines first appear in
func ParseLines(reader io.Reader, datasource *ctdf.DataSource, now time.Time) ([]*ctdf.Line, error) {
	var records []*LineRecord
	if err := gocsv.Unmarshal(reader, &records); err != nil {
		return nil, fmt.Errorf("parsing lines csv: %w", err)
	}

	var lines []*ctdf.Line
	linesByID := map[string]*ctdf.Line{}

	for _, record := range records {
		transportType := ctdf.ParseTransportType(strings.TrimSpace(record.TransportType))
		name := strings.TrimSpace(record.Line)
		identifier := ctdf.LineIdentifier(transportType, name)

		line, exists := linesByID[identifier]
		if !exists {
			status := ctdf.LineStatus(strings.ToLower(strings.TrimSpace(record.Status)))
			if status == "" {
				status = ctdf.LineStatusActive
			}

			line = &ctdf.Line{
				PrimaryIdentifier:    identifier,
				CreationDateTime:     now,
				ModificationDateTime: now,
				DataSource:           datasource,
				PrimaryName:          name,
				TransportType:        transportType,
				Fare:                 record.Fare,
				Status:               status,
			}

			linesByID[identifier] = line
			lines = append(lines, line)
		}

		line.Stops = append(line.Stops, &ctdf.LineStop{
			PrimaryName: strings.TrimSpace(record.StopName),
			Sequence:    record.StopSequence,
			Location:    ctdf.NewLocation(geo.Point{Latitude: record.Latitude, Longitude: record.Longitude}),
		})
	}

	for _, line := range lines {
		if line.Status != ctdf.LineStatusActive && line.Status != ctdf.LineStatusInactive {
			return nil, fmt.Errorf("line %s has unknown status %s", line.PrimaryName, line.Status)
		}

		line.SortStops()

		if err := line.Validate(); err != nil {
			return nil, err
		}
	}

	return lines, nil
}

func ImportLines(ctx context.Context, lines []*ctdf.Line) error {
	if len(lines) == 0 {
		return nil
	}

	var operations []mongo.WriteModel
	for _, line := range lines {
		replaceModel := mongo.NewReplaceOneModel()
		replaceModel.SetFilter(bson.M{"primaryidentifier": line.PrimaryIdentifier})
		replaceModel.SetReplacement(line)
		replaceModel.SetUpsert(true)

		operations = append(operations, replaceModel)
	}

	linesCollection := database.GetCollection("lines")
	result, err := linesCollection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return err
	}

	log.Info().
		Int64("inserted", result.UpsertedCount).
		Int64("updated", result.ModifiedCount).
		Msg("Imported lines")

	return nil
}
