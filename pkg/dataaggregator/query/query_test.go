package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
	"go.mongodb.org/mongo-driver/bson"
)

func TestActiveLinesToBson(t *testing.T) {
	all := ActiveLines{}
	assert.Equal(t, bson.M{"status": ctdf.LineStatusActive}, all.ToBson())

	metro := ActiveLines{TransportType: ctdf.TransportTypeMetro}
	assert.Equal(t, bson.M{"status": ctdf.LineStatusActive, "transporttype": ctdf.TransportTypeMetro}, metro.ToBson())
}

func TestStopsNearbyBoxUsesLongitudeFirst(t *testing.T) {
	q := StopsNearby{
		BottomLeft: geo.Point{Latitude: 19.3, Longitude: -99.2},
		TopRight:   geo.Point{Latitude: 19.5, Longitude: -99.0},
	}

	box := q.ToBson()["stops.location"].(bson.M)["$geoWithin"].(bson.M)["$box"].(bson.A)

	assert.Equal(t, bson.A{-99.2, 19.3}, box[0])
	assert.Equal(t, bson.A{-99.0, 19.5}, box[1])
}

func TestStopsNearbyContains(t *testing.T) {
	q := StopsNearby{
		BottomLeft: geo.Point{Latitude: 0, Longitude: 0},
		TopRight:   geo.Point{Latitude: 1, Longitude: 2},
	}

	assert.True(t, q.Contains(geo.Point{Latitude: 0.5, Longitude: 1.5}))
	assert.True(t, q.Contains(geo.Point{Latitude: 1, Longitude: 2}))
	assert.False(t, q.Contains(geo.Point{Latitude: 1.5, Longitude: 1}))
	assert.False(t, q.Contains(geo.Point{Latitude: 0.5, Longitude: -0.1}))
}

func TestVehiclesForLineToBson(t *testing.T) {
	q := VehiclesForLine{LineRef: "TL:LINE:Bus:7"}

	assert.Equal(t, bson.M{"lineref": "TL:LINE:Bus:7"}, q.ToBson())
}

func TestServiceAlertsForMatchingIdentifierOnlyCurrent(t *testing.T) {
	before := time.Now()
	q := ServiceAlertsForMatchingIdentifier{MatchingIdentifier: "TL:LINE:Metro:2"}
	filter := q.ToBson()
	after := time.Now()

	assert.Equal(t, "TL:LINE:Metro:2", filter["matchedidentifiers"])

	validFrom := filter["validfrom"].(bson.M)["$lte"].(time.Time)
	validUntil := filter["validuntil"].(bson.M)["$gte"].(time.Time)

	assert.Equal(t, validFrom, validUntil)
	assert.False(t, validFrom.Before(before))
	assert.False(t, validFrom.After(after))
}
