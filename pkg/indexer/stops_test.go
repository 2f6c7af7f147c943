package indexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
)

func TestStopDocuments(t *testing.T) {
	active := &ctdf.Line{
		PrimaryIdentifier: "TL:LINE:Metro:2",
		PrimaryName:       "2",
		TransportType:     ctdf.TransportTypeMetro,
		Status:            ctdf.LineStatusActive,
		Stops: []*ctdf.LineStop{
			{PrimaryName: "Zocalo", Sequence: 1, Location: ctdf.NewLocation(geo.Point{Latitude: 19.43, Longitude: -99.13})},
			{PrimaryName: "Nowhere", Sequence: 2},
		},
	}
	inactive := &ctdf.Line{
		PrimaryIdentifier: "TL:LINE:Bus:9",
		Status:            ctdf.LineStatusInactive,
		Stops: []*ctdf.LineStop{
			{PrimaryName: "Closed", Sequence: 1, Location: ctdf.NewLocation(geo.Point{Latitude: 1, Longitude: 1})},
		},
	}

	documents := stopDocuments([]*ctdf.Line{active, inactive, nil})
	require.Len(t, documents, 1)

	assert.Equal(t, &stopDocument{
		PrimaryName:   "Zocalo",
		Location:      geoPoint{Lat: 19.43, Lon: -99.13},
		LineRef:       "TL:LINE:Metro:2",
		LineName:      "2",
		TransportType: ctdf.TransportTypeMetro,
		Sequence:      1,
	}, documents[0])
}
