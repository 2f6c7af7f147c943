package routes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/geo"
	"github.com/transitline/transitline/pkg/planner"
)

const (
	plannerCodeInvalidCoordinates = "InvalidCoordinates"
	plannerCodeNoCandidateFound   = "NoCandidateFound"
	plannerCodeNoRouteFound       = "NoRouteFound"
)

func PlannerRouter(router fiber.Router) {
	router.Get("/", getRoutePlan)
}

func getPoint(c *fiber.Ctx, prefix string) (geo.Point, error) {
	var point geo.Point

	for _, parameter := range []struct {
		name  string
		value *float64
	}{
		{prefix + "_lat", &point.Latitude},
		{prefix + "_lng", &point.Longitude},
	} {
		raw := c.Query(parameter.name)
		if raw == "" {
			return point, fmt.Errorf("%w: parameter %s is required", planner.ErrInvalidCoordinates, parameter.name)
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return point, fmt.Errorf("%w: parameter %s should be a number", planner.ErrInvalidCoordinates, parameter.name)
		}

		*parameter.value = value
	}

	return point, nil
}

func sendPlannerError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	code := ""

	switch {
	case errors.Is(err, planner.ErrInvalidCoordinates):
		status, code = fiber.StatusBadRequest, plannerCodeInvalidCoordinates
	case errors.Is(err, planner.ErrNoCandidateFound):
		status, code = fiber.StatusNotFound, plannerCodeNoCandidateFound
	case errors.Is(err, planner.ErrNoRouteFound):
		status, code = fiber.StatusNotFound, plannerCodeNoRouteFound
	}

	c.SendStatus(status)
	return c.JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

func getRoutePlan(c *fiber.Ctx) error {
	origin, err := getPoint(c, "origin")
	if err != nil {
		return sendPlannerError(c, err)
	}

	destination, err := getPoint(c, "destination")
	if err != nil {
		return sendPlannerError(c, err)
	}

	itinerary, err := dataaggregator.Lookup[*ctdf.Itinerary](query.RoutePlan{
		Context:     c.UserContext(),
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		return sendPlannerError(c, err)
	}

	itineraryReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, itinerary)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce itinerary"))
	}

	return c.JSON(itineraryReduced)
}
