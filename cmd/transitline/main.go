package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/api"
	"github.com/transitline/transitline/pkg/archiver"
	"github.com/transitline/transitline/pkg/chat"
	"github.com/transitline/transitline/pkg/dataimporter"
	"github.com/transitline/transitline/pkg/dbwatch"
	"github.com/transitline/transitline/pkg/events"
	"github.com/transitline/transitline/pkg/indexer"
	"github.com/transitline/transitline/pkg/notify"
	"github.com/transitline/transitline/pkg/planner"
	"github.com/transitline/transitline/pkg/realtime"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// A missing .env is fine, the real environment still applies
	_ = godotenv.Load()

	if os.Getenv("TRANSITLINE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRANSITLINE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "transitline",
		Description: "Single binary of truth for Transitline - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			planner.RegisterCLI(),
			dataimporter.RegisterCLI(),
			realtime.RegisterCLI(),
			dbwatch.RegisterCLI(),
			events.RegisterCLI(),
			notify.RegisterCLI(),
			chat.RegisterCLI(),
			indexer.RegisterCLI(),
			archiver.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
