package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
)

func StopsRouter(router fiber.Router) {
	router.Get("/", listStops)
}

func listStops(c *fiber.Ctx) error {
	stopsNearby, err := getBoundsQuery(c)
	if err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	stops, err := dataaggregator.Lookup[[]*ctdf.StopOnLine](stopsNearby)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	if stops == nil {
		stops = []*ctdf.StopOnLine{}
	}

	stopsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, stops)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce stops"))
	}

	return c.JSON(stopsReduced)
}
