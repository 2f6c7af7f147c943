package archiver

import (
	"context"
	"time"

	"github.com/transitline/transitline/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "archiver",
		Usage: "Archive resolved incidents",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the archive process once",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output-directory",
						Value: "/tmp/",
					},
					&cli.DurationFlag{
						Name:  "max-age",
						Value: 30 * 24 * time.Hour,
						Usage: "archive incidents resolved longer ago than this",
					},
					&cli.BoolFlag{
						Name: "cloud-upload",
					},
					&cli.StringFlag{
						Name: "cloud-bucket-name",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					archiver := Archiver{
						OutputDirectory: c.String("output-directory"),
						MaxAge:          c.Duration("max-age"),
						CloudUpload:     c.Bool("cloud-upload"),
						CloudBucketName: c.String("cloud-bucket-name"),
					}

					return archiver.Perform(context.Background())
				},
			},
		},
	}
}
