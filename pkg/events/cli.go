package events

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/consumer"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the events runner",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events server",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       "events-queue",
						NumberConsumers: 5,
						BatchSize:       20,
						Timeout:         2 * time.Second,
						Consumer:        NewEventsBatchConsumer(),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish

					return nil
				},
			},
			{
				Name:  "cleaner",
				Usage: "return unacked deliveries of dead consumers to their queues",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Value: time.Minute,
						Usage: "time between cleaner runs",
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					cleaner := rmq.NewCleaner(redis_client.QueueConnection)

					for range time.Tick(c.Duration("interval")) {
						returned, err := cleaner.Clean()
						if err != nil {
							log.Error().Err(err).Msg("Failed to clean queues")
							continue
						}

						log.Info().Int64("returned", returned).Msg("Cleaned queues")
					}

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "generate a test event",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "line",
						Usage:    "line identifier the test alert matches",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						return err
					}

					serviceAlert := ctdf.ServiceAlert{
						PrimaryIdentifier: fmt.Sprintf(ctdf.ServiceAlertIDFormat, uuid.NewString()),

						AlertType: ctdf.ServiceAlertTypeServiceSuspended,

						Title: "Line Suspended",
						Text:  "Service has been suspended due to a fault on the line",

						MatchedIdentifiers: []string{c.String("line")},
					}

					eventsQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
					if err != nil {
						return err
					}

					event := ctdf.Event{
						Type:      ctdf.EventTypeServiceAlertCreated,
						Timestamp: time.Now(),
						Body:      serviceAlert,
					}

					eventBytes, _ := json.Marshal(event)

					return eventsQueue.PublishBytes(eventBytes)
				},
			},
		},
	}
}
