package realtime

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "realtime",
		Usage: "Realtime sources",
		Subcommands: []*cli.Command{
			{
				Name:  "vehicle-positions",
				Usage: "poll a GTFS-RT vehicle positions feed and update vehicle locations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "url",
						Usage:    "GTFS-RT vehicle positions feed URL",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "interval",
						Value: 30 * time.Second,
						Usage: "time between feed fetches",
					},
					&cli.StringFlag{
						Name:  "transport-type",
						Value: string(ctdf.TransportTypeBus),
						Usage: "transport type of the lines in the feed (Bus or Metro)",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
					defer stop()

					poller := NewVehiclePositionsPoller(
						c.String("url"),
						c.Duration("interval"),
						ctdf.ParseTransportType(c.String("transport-type")),
					)

					log.Info().Str("url", poller.URL).Dur("interval", poller.Interval).Msg("Starting vehicle positions poller")

					poller.Run(ctx)

					return nil
				},
			},
		},
	}
}
