package dbwatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/events"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type changeEvent[T any] struct {
	OperationType string `bson:"operationType"`
	FullDocument  *T     `bson:"fullDocument"`
}

// insertWatch raises an event for every document inserted into a collection
type insertWatch[T any] struct {
	Collection string
	EventType  ctdf.EventType
	EventQueue events.Publisher

	identifier func(document *T) string
}

func (w *insertWatch[T]) Run(ctx context.Context) {
	exponentialBackOff := backoff.NewExponentialBackOff()
	exponentialBackOff.MaxElapsedTime = 0
	retry := backoff.WithContext(exponentialBackOff, ctx)

	backoff.RetryNotify(func() error {
		return w.watch(ctx)
	}, retry, func(err error, wait time.Duration) {
		log.Error().Err(err).Str("collection", w.Collection).Dur("wait", wait).Msg("Watch fell over, restarting")
	})
}

func (w *insertWatch[T]) watch(ctx context.Context) error {
	log.Info().Str("collection", w.Collection).Msg("Starting dbwatch")

	collection := database.GetCollection(w.Collection)
	matchPipeline := bson.D{
		{
			Key: "$match", Value: bson.D{
				{Key: "operationType", Value: "insert"},
			},
		},
	}

	stream, err := collection.Watch(ctx, mongo.Pipeline{matchPipeline}, options.ChangeStream().SetFullDocument(options.WhenAvailable))
	if err != nil {
		return err
	}
	defer stream.Close(context.Background())

	for stream.Next(ctx) {
		var data changeEvent[T]
		if err := stream.Decode(&data); err != nil {
			log.Error().Err(err).Msg("Failed to decode event")
			continue
		}

		if err := w.handleChange(&data); err != nil {
			log.Error().Err(err).Str("collection", w.Collection).Msg("Failed to publish event")
		}
	}

	if ctx.Err() != nil {
		return backoff.Permanent(ctx.Err())
	}

	return stream.Err()
}

func (w *insertWatch[T]) handleChange(data *changeEvent[T]) error {
	if data.OperationType != "insert" || data.FullDocument == nil {
		return nil
	}

	log.Info().
		Str("collection", w.Collection).
		Str("id", w.identifier(data.FullDocument)).
		Msg("New document inserted")

	eventBytes, err := json.Marshal(ctdf.Event{
		Type:      w.EventType,
		Timestamp: time.Now(),
		Body:      data.FullDocument,
	})
	if err != nil {
		return err
	}

	return w.EventQueue.PublishBytes(eventBytes)
}
