package query

import (
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
	"go.mongodb.org/mongo-driver/bson"
)

// StopsNearby finds stops of active lines inside a bounding box
type StopsNearby struct {
	BottomLeft geo.Point
	TopRight   geo.Point
}

func (s *StopsNearby) Contains(point geo.Point) bool {
	return point.Latitude >= s.BottomLeft.Latitude && point.Latitude <= s.TopRight.Latitude &&
		point.Longitude >= s.BottomLeft.Longitude && point.Longitude <= s.TopRight.Longitude
}

func (s *StopsNearby) ToBson() bson.M {
	return bson.M{
		"status": ctdf.LineStatusActive,
		"stops.location": bson.M{
			"$geoWithin": bson.M{
				"$box": bson.A{
					bson.A{s.BottomLeft.Longitude, s.BottomLeft.Latitude},
					bson.A{s.TopRight.Longitude, s.TopRight.Latitude},
				},
			},
		},
	}
}
