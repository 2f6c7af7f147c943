package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/geo"
)

var validate = validator.New()

func sendError(c *fiber.Ctx, status int, err error) error {
	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

func getBoundsQuery(c *fiber.Ctx) (query.StopsNearby, error) {
	bounds := c.Query("bounds")

	if bounds == "" {
		return query.StopsNearby{}, errors.New("A filter must be applied to the request")
	}

	boundsSplit := strings.Split(bounds, ",")
	if len(boundsSplit) != 4 {
		return query.StopsNearby{}, errors.New("Bounds must contain 4 co-ordinates")
	}

	var coordinates [4]float64
	for i, value := range boundsSplit {
		coordinate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return query.StopsNearby{}, errors.New("Bounds co-ordinates must be numbers")
		}

		coordinates[i] = coordinate
	}

	stopsNearby := query.StopsNearby{
		BottomLeft: geo.Point{Longitude: coordinates[0], Latitude: coordinates[1]},
		TopRight:   geo.Point{Longitude: coordinates[2], Latitude: coordinates[3]},
	}

	if stopsNearby.BottomLeft.Validate() != nil || stopsNearby.TopRight.Validate() != nil {
		return query.StopsNearby{}, errors.New("Bounds co-ordinates are out of range")
	}

	return stopsNearby, nil
}
