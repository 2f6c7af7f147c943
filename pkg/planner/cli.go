package planner

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kr/pretty"
	"github.com/transitline/transitline/pkg/dataaggregator/source/databaselookup"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/geo"
	"github.com/urfave/cli/v2"
)

func parsePointFlag(value string) (geo.Point, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return geo.Point{}, fmt.Errorf("%w: %q should be lat,lng", ErrInvalidCoordinates, value)
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, value)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrInvalidCoordinates, value)
	}

	return geo.Point{Latitude: latitude, Longitude: longitude}, nil
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Route planner tools",
		Subcommands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "plan a route between two points using the lines in the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "origin",
						Usage:    "rider position as lat,lng",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "destination",
						Usage:    "destination as lat,lng",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "planner-config",
						Usage: "YAML file with route planner tuning",
					},
				},
				Action: func(c *cli.Context) error {
					origin, err := parsePointFlag(c.String("origin"))
					if err != nil {
						return err
					}
					destination, err := parsePointFlag(c.String("destination"))
					if err != nil {
						return err
					}

					config, err := LoadConfig(c.String("planner-config"))
					if err != nil {
						return err
					}

					if err := database.Connect(); err != nil {
						return err
					}

					planner := NewPlanner(databaselookup.Source{}, config)

					itinerary, err := planner.PlanRoute(context.Background(), origin, destination)
					if err != nil {
						return err
					}

					pretty.Println(itinerary)

					return nil
				},
			},
		},
	}
}
