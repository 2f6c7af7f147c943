package planner

import (
	"context"
	"fmt"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
)

type staticLineSource struct {
	lines []*ctdf.Line
	err   error
}

func (s *staticLineSource) ListLines(ctx context.Context) ([]*ctdf.Line, error) {
	return s.lines, s.err
}

type testStop struct {
	name string
	lat  float64
	lng  float64
}

func newTestLine(name string, transportType ctdf.TransportType, stops ...testStop) *ctdf.Line {
	line := &ctdf.Line{
		PrimaryIdentifier: ctdf.LineIdentifier(transportType, name),
		PrimaryName:       name,
		TransportType:     transportType,
		Status:            ctdf.LineStatusActive,
	}

	for i, stop := range stops {
		stopName := stop.name
		if stopName == "" {
			stopName = fmt.Sprintf("%s-%d", name, i+1)
		}

		line.Stops = append(line.Stops, &ctdf.LineStop{
			PrimaryName: stopName,
			Sequence:    i + 1,
			Location:    ctdf.NewLocation(geo.Point{Latitude: stop.lat, Longitude: stop.lng}),
		})
	}

	return line
}

func busLine(name string, stops ...testStop) *ctdf.Line {
	return newTestLine(name, ctdf.TransportTypeBus, stops...)
}

func metroLine(name string, stops ...testStop) *ctdf.Line {
	return newTestLine(name, ctdf.TransportTypeMetro, stops...)
}

func at(lat float64, lng float64) testStop {
	return testStop{lat: lat, lng: lng}
}

func namedAt(name string, lat float64, lng float64) testStop {
	return testStop{name: name, lat: lat, lng: lng}
}

func newTestPlanner(lines ...*ctdf.Line) *Planner {
	return NewPlanner(&staticLineSource{lines: lines}, DefaultConfig())
}
