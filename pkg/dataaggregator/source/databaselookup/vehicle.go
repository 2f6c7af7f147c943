package databaselookup

import (
	"context"
	"errors"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
)

var ErrVehicleNotFound = errors.New("could not find a matching Vehicle")

func (s Source) VehicleQuery(vehicleQuery query.Vehicle) (*ctdf.Vehicle, error) {
	vehiclesCollection := database.GetCollection("vehicles")
	var vehicle *ctdf.Vehicle
	vehiclesCollection.FindOne(context.Background(), vehicleQuery.ToBson()).Decode(&vehicle)

	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	return vehicle, nil
}

func (s Source) VehiclesForLineQuery(vehiclesQuery query.VehiclesForLine) ([]*ctdf.Vehicle, error) {
	vehiclesCollection := database.GetCollection("vehicles")

	cursor, err := vehiclesCollection.Find(context.Background(), vehiclesQuery.ToBson())
	if err != nil {
		return nil, err
	}

	vehicles := []*ctdf.Vehicle{}
	if err := cursor.All(context.Background(), &vehicles); err != nil {
		return nil, err
	}

	return vehicles, nil
}
