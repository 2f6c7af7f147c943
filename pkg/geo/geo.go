// Package geo holds the coordinate primitives used by the route planner.
//
// Every coordinate inside the planner is a Point in (latitude, longitude) order. Stored
// documents use GeoJSON [longitude, latitude] and are converted once by ctdf.Location.
package geo

import (
	"errors"
	"fmt"
	"math"
)

const EarthRadiusKm = 6371.0

var ErrInvalidPoint = errors.New("invalid coordinates")

type Point struct {
	Latitude  float64
	Longitude float64
}

func (p Point) String() string {
	return fmt.Sprintf("%f,%f", p.Latitude, p.Longitude)
}

// Validate rejects NaN/Inf and anything outside latitude [-90,90] / longitude [-180,180]
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidPoint, p.Latitude)
	}

	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidPoint, p.Longitude)
	}

	return nil
}

// Vector is a plain (Δlat, Δlng) difference in degrees
type Vector struct {
	DeltaLatitude  float64
	DeltaLongitude float64
}

func VectorBetween(from Point, to Point) Vector {
	return Vector{
		DeltaLatitude:  to.Latitude - from.Latitude,
		DeltaLongitude: to.Longitude - from.Longitude,
	}
}

// Distance is the haversine great-circle distance in kilometres
func Distance(a Point, b Point) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degreesToRadians(a.Latitude))*math.Cos(degreesToRadians(b.Latitude))*sinLon*sinLon

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func DistanceMeters(a Point, b Point) float64 {
	return Distance(a, b) * 1000
}

// DirectionalAlignment is the unnormalised dot product of the two vectors.
// Positive means the candidate lies roughly in the travel direction, negative roughly behind.
func DirectionalAlignment(travel Vector, candidate Vector) float64 {
	return travel.DeltaLatitude*candidate.DeltaLatitude + travel.DeltaLongitude*candidate.DeltaLongitude
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
