package planner

import (
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
)

// IndexedStop is a stop together with the line that owns it.
// DistanceMeters and Fallback are only set on results of FindNearestStop.
type IndexedStop struct {
	Line  *ctdf.Line
	Stop  *ctdf.LineStop
	Point geo.Point

	DistanceMeters float64
	Fallback       bool
}

func (s *IndexedStop) IsBus() bool {
	return s.Line.TransportType == ctdf.TransportTypeBus
}

// StopIndex is a read-only snapshot of the active lines for a single planning request
type StopIndex struct {
	TieEpsilonMeters float64

	lines     []*ctdf.Line
	linesByID map[string]*ctdf.Line
	stops     []*IndexedStop
}

func NewStopIndex(lines []*ctdf.Line) *StopIndex {
	index := &StopIndex{
		TieEpsilonMeters: DefaultTieEpsilonMeters,
		linesByID:        map[string]*ctdf.Line{},
	}

	for _, line := range lines {
		if line == nil || !line.IsActive() {
			continue
		}

		index.lines = append(index.lines, line)
		index.linesByID[line.PrimaryIdentifier] = line

		for _, stop := range line.Stops {
			if !stop.Location.HasPoint() {
				log.Debug().Str("line", line.PrimaryIdentifier).Str("stop", stop.PrimaryName).Msg("Skipping stop without location")
				continue
			}

			index.stops = append(index.stops, &IndexedStop{
				Line:  line,
				Stop:  stop,
				Point: stop.Location.Point(),
			})
		}
	}

	return index
}

// AllLines returns the indexed lines in the order the source listed them
func (index *StopIndex) AllLines() []*ctdf.Line {
	return index.lines
}

func (index *StopIndex) Line(identifier string) *ctdf.Line {
	return index.linesByID[identifier]
}

func (index *StopIndex) StopCount() int {
	return len(index.stops)
}
