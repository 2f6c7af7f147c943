package dataimporter

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/dataimporter/insertrecords"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Load seed data into the database",
		Subcommands: []*cli.Command{
			{
				Name:  "lines",
				Usage: "Import lines and their stops from a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Path to the lines CSV",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					file, err := os.Open(c.String("file"))
					if err != nil {
						return err
					}
					defer file.Close()

					datasource := &ctdf.DataSource{
						OriginalFormat: "CSV",
						Provider:       "Seed",
						Dataset:        filepath.Base(c.String("file")),
						Identifier:     time.Now().Format(time.RFC3339),
					}

					lines, err := ParseLines(file, datasource, time.Now())
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}

					return ImportLines(context.Background(), lines)
				},
			},
			{
				Name:  "insert-records",
				Usage: "Upsert hand written records from YAML files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Value: "data/insert-records/",
						Usage: "Directory of YAML insert records",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					return insertrecords.Insert(context.Background(), c.String("dir"))
				},
			},
		},
	}
}
