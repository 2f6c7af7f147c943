package api

import (
	"github.com/transitline/transitline/pkg/api/stats"
	"github.com/transitline/transitline/pkg/dataaggregator/global"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/elastic_client"
	"github.com/transitline/transitline/pkg/planner"
	"github.com/transitline/transitline/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "planner-config",
						Usage: "YAML file with route planner tuning",
					},
				},
				Action: func(c *cli.Context) error {
					plannerConfig, err := planner.LoadConfig(c.String("planner-config"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}
					if err := elastic_client.Connect(false); err != nil {
						return err
					}

					global.Setup(plannerConfig)

					go stats.UpdateRecordsStats()

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
