package insertrecords

import (
	"context"
	"fmt"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertDefinition upserts a single hand written document, eg. a vehicle or a standing service alert
type InsertDefinition struct {
	Collection string                 `yaml:"Collection"`
	Match      map[string]string      `yaml:"Match"`
	Data       map[string]interface{} `yaml:"Data"`
}

var allowedCollections = map[string]bool{
	"lines":          true,
	"vehicles":       true,
	"service_alerts": true,
}

func (i *InsertDefinition) Validate() error {
	if !allowedCollections[i.Collection] {
		return fmt.Errorf("collection %q cannot be written by insert records", i.Collection)
	}
	if len(i.Match) == 0 {
		return fmt.Errorf("insert record for %s has no Match", i.Collection)
	}

	if i.Collection == "lines" {
		return i.validateLine()
	}

	return nil
}

// Line records carry the whole line so they go through the same checks as the CSV importer
func (i *InsertDefinition) validateLine() error {
	lineBytes, err := bson.Marshal(i.Data)
	if err != nil {
		return fmt.Errorf("insert definition line marshal: %w", err)
	}

	var line ctdf.Line
	if err := bson.Unmarshal(lineBytes, &line); err != nil {
		return fmt.Errorf("insert definition line decode: %w", err)
	}

	line.SortStops()

	return line.Validate()
}

func (i *InsertDefinition) Upsert(ctx context.Context) error {
	if err := i.Validate(); err != nil {
		return err
	}

	collection := database.GetCollection(i.Collection)

	query, err := bson.Marshal(i.Match)
	if err != nil {
		return fmt.Errorf("insert definition match marshal: %w", err)
	}

	opts := options.Update().SetUpsert(true)
	_, err = collection.UpdateOne(ctx, query, bson.M{"$set": i.Data}, opts)

	return err
}
