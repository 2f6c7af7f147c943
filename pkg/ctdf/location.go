package ctdf

import "github.com/transitline/transitline/pkg/geo"

// Location is a GeoJSON point, Coordinates are stored as [longitude, latitude]
type Location struct {
	Type        string    `json:"-" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewLocation(point geo.Point) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{point.Longitude, point.Latitude},
	}
}

// HasPoint reports whether the location carries exactly one [lng, lat] pair
func (l *Location) HasPoint() bool {
	return l != nil && len(l.Coordinates) == 2
}

func (l *Location) Point() geo.Point {
	if !l.HasPoint() {
		return geo.Point{}
	}

	return geo.Point{
		Latitude:  l.Coordinates[1],
		Longitude: l.Coordinates[0],
	}
}
