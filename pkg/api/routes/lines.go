package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
)

func LinesRouter(router fiber.Router) {
	router.Get("/", listLines)
	router.Get("/:identifier", getLine)
	router.Get("/:identifier/vehicles", getLineVehicles)
}

func listLines(c *fiber.Ctx) error {
	activeLinesQuery := query.ActiveLines{}
	if transportType := c.Query("transport_type"); transportType != "" {
		activeLinesQuery.TransportType = ctdf.ParseTransportType(transportType)
	}

	lines, err := dataaggregator.Lookup[[]*ctdf.Line](activeLinesQuery)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	if lines == nil {
		lines = []*ctdf.Line{}
	}

	linesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, lines)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce lines"))
	}

	return c.JSON(linesReduced)
}

func getLine(c *fiber.Ctx) error {
	line, err := dataaggregator.Lookup[*ctdf.Line](query.Line{
		PrimaryIdentifier: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err)
	}

	lineReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, line)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce line"))
	}

	return c.JSON(lineReduced)
}

func getLineVehicles(c *fiber.Ctx) error {
	vehicles, err := dataaggregator.Lookup[[]*ctdf.Vehicle](query.VehiclesForLine{
		LineRef: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	if vehicles == nil {
		vehicles = []*ctdf.Vehicle{}
	}

	vehiclesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, vehicles)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce vehicles"))
	}

	return c.JSON(vehiclesReduced)
}
