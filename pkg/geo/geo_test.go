package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var samplePoints = []Point{
	{Latitude: 0, Longitude: 0},
	{Latitude: 40.4168, Longitude: -3.7038},
	{Latitude: -33.8688, Longitude: 151.2093},
	{Latitude: 89.9, Longitude: 179.9},
	{Latitude: -89.9, Longitude: -179.9},
	{Latitude: 19.4326, Longitude: -99.1332},
}

func TestDistanceToSelfIsZero(t *testing.T) {
	for _, point := range samplePoints {
		assert.Equal(t, 0.0, Distance(point, point), point.String())
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9, "%s -> %s", a, b)
		}
	}
}

func TestDistanceColinearPointsAdd(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 0, Longitude: 1}
	c := Point{Latitude: 0, Longitude: 2.5}

	assert.InDelta(t, Distance(a, c), Distance(a, b)+Distance(b, c), 1e-9)

	// Along a meridian as well
	north := Point{Latitude: 10, Longitude: 20}
	middle := Point{Latitude: 25, Longitude: 20}
	further := Point{Latitude: 60, Longitude: 20}

	assert.InDelta(t, Distance(north, further), Distance(north, middle)+Distance(middle, further), 1e-9)
}

func TestDistanceKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
	}{
		{
			name:     "One degree of longitude at the equator",
			a:        Point{Latitude: 0, Longitude: 0},
			b:        Point{Latitude: 0, Longitude: 1},
			expected: 111.195,
		},
		{
			name:     "Antipodal points",
			a:        Point{Latitude: 0, Longitude: 0},
			b:        Point{Latitude: 0, Longitude: 180},
			expected: math.Pi * EarthRadiusKm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Distance(tt.a, tt.b), 0.01)
		})
	}
}

func TestDistanceMeters(t *testing.T) {
	a := Point{Latitude: 0, Longitude: 1}
	b := Point{Latitude: 0, Longitude: 1.001}

	assert.InDelta(t, 111.195, DistanceMeters(a, b), 0.01)
}

func TestDirectionalAlignment(t *testing.T) {
	rider := Point{Latitude: 0, Longitude: 0}
	destination := Point{Latitude: 0, Longitude: 2}
	travel := VectorBetween(rider, destination)

	ahead := VectorBetween(rider, Point{Latitude: 0.1, Longitude: 1})
	behind := VectorBetween(rider, Point{Latitude: 0.1, Longitude: -1})
	sideways := VectorBetween(rider, Point{Latitude: 1, Longitude: 0})

	assert.Greater(t, DirectionalAlignment(travel, ahead), 0.0)
	assert.Less(t, DirectionalAlignment(travel, behind), 0.0)
	assert.Equal(t, 0.0, DirectionalAlignment(travel, sideways))

	// Not normalised: magnitude scales with the vectors
	assert.Equal(t, 4.0, DirectionalAlignment(Vector{DeltaLongitude: 2}, Vector{DeltaLongitude: 2}))
}

func TestPointValidate(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		valid bool
	}{
		{"Origin", Point{0, 0}, true},
		{"Bounds", Point{90, 180}, true},
		{"Negative bounds", Point{-90, -180}, true},
		{"Latitude too large", Point{500, 0}, false},
		{"Latitude too small", Point{-90.0001, 0}, false},
		{"Longitude too large", Point{0, 180.5}, false},
		{"NaN latitude", Point{math.NaN(), 0}, false},
		{"Infinite longitude", Point{0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidPoint))
			}
		})
	}
}
