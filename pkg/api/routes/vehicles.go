package routes

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/liip/sheriff"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/geo"
	"go.mongodb.org/mongo-driver/bson"
)

type vehicleUpdate struct {
	Latitude  *float64
	Longitude *float64

	Bearing float64            `validate:"gte=0,lt=360"`
	Status  ctdf.VehicleStatus `validate:"omitempty,oneof=InService OutOfService Maintenance"`
}

func VehiclesRouter(router fiber.Router) {
	router.Get("/:identifier", getVehicle)
	router.Patch("/:identifier", patchVehicle)
}

func getVehicle(c *fiber.Ctx) error {
	vehicle, err := dataaggregator.Lookup[*ctdf.Vehicle](query.Vehicle{
		PrimaryIdentifier: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err)
	}

	vehicle.GetReferences()

	vehicleReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, vehicle)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, errors.New("Sheriff could not reduce vehicle"))
	}

	return c.JSON(vehicleReduced)
}

// applyVehicleUpdate only touches the fields present in the update
func applyVehicleUpdate(vehicle *ctdf.Vehicle, update *vehicleUpdate) error {
	if err := validate.Struct(update); err != nil {
		return err
	}

	if (update.Latitude == nil) != (update.Longitude == nil) {
		return errors.New("Latitude and Longitude must be updated together")
	}

	if update.Latitude != nil {
		point := geo.Point{Latitude: *update.Latitude, Longitude: *update.Longitude}
		if err := point.Validate(); err != nil {
			return err
		}

		vehicle.Location = ctdf.NewLocation(point)
	}

	if err := copier.CopyWithOption(vehicle, update, copier.Option{IgnoreEmpty: true}); err != nil {
		return err
	}

	vehicle.ModificationDateTime = time.Now()

	return nil
}

func patchVehicle(c *fiber.Ctx) error {
	var update vehicleUpdate
	if err := c.BodyParser(&update); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	vehicle, err := dataaggregator.Lookup[*ctdf.Vehicle](query.Vehicle{
		PrimaryIdentifier: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, fiber.StatusNotFound, err)
	}

	if err := applyVehicleUpdate(vehicle, &update); err != nil {
		return sendError(c, fiber.StatusBadRequest, err)
	}

	vehiclesCollection := database.GetCollection("vehicles")
	_, err = vehiclesCollection.UpdateOne(context.Background(),
		bson.M{"primaryidentifier": vehicle.PrimaryIdentifier},
		bson.M{"$set": bson.M{
			"location":             vehicle.Location,
			"bearing":              vehicle.Bearing,
			"status":               vehicle.Status,
			"modificationdatetime": vehicle.ModificationDateTime,
		}},
	)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(vehicle)
}
