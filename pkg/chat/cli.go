package chat

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/metrics"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Provides the rider chat rooms",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run chat server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8081",
						Usage: "listen target for the chat server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					hub := NewHub(MongoStore{}, metrics.Default)

					log.Info().Str("listen", c.String("listen")).Msg("Starting chat server")

					return http.ListenAndServe(c.String("listen"), hub.Handler())
				},
			},
		},
	}
}
