package dbwatch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dbwatch",
		Usage: "Watches the database and raises events",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run dbwatch server",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					eventQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
					if err != nil {
						return err
					}

					log.Info().Msg("Starting dbwatch server")

					ctx, cancel := context.WithCancel(context.Background())
					defer cancel()

					go NewServiceAlertsWatch(eventQueue).Run(ctx)
					go NewIncidentsWatch(eventQueue).Run(ctx)

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					return nil
				},
			},
		},
	}
}
