package planner

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/geo"
	"golang.org/x/exp/slices"
)

type SearchMode int

const (
	SearchModeBoarding SearchMode = iota
	SearchModeAlighting
)

func (m SearchMode) String() string {
	switch m {
	case SearchModeBoarding:
		return "boarding"
	case SearchModeAlighting:
		return "alighting"
	default:
		return "unknown"
	}
}

// FindNearestStop picks the stop to use around rider when travelling towards destination.
//
// Boarding keeps stops ahead of the rider (positive alignment) and takes the closest one.
// Alighting keeps stops behind (negative alignment) and takes the furthest one.
// When nothing passes the direction filter the closest stop overall is returned with Fallback set.
// Candidates within TieEpsilonMeters of the winner are resolved in favour of bus stops.
func (index *StopIndex) FindNearestStop(rider geo.Point, destination geo.Point, mode SearchMode) (*IndexedStop, error) {
	if len(index.stops) == 0 {
		return nil, fmt.Errorf("%w: stop index is empty", ErrNoCandidateFound)
	}

	travel := geo.VectorBetween(rider, destination)

	all := make([]*IndexedStop, 0, len(index.stops))
	var candidates []*IndexedStop

	for _, indexed := range index.stops {
		candidate := *indexed
		candidate.DistanceMeters = geo.DistanceMeters(rider, indexed.Point)
		all = append(all, &candidate)

		alignment := geo.DirectionalAlignment(travel, geo.VectorBetween(rider, indexed.Point))

		if (mode == SearchModeBoarding && alignment > 0) || (mode == SearchModeAlighting && alignment < 0) {
			candidates = append(candidates, &candidate)
		}
	}

	if len(candidates) == 0 {
		closest := index.pickCandidate(all, true)
		closest.Fallback = true

		log.Debug().
			Str("mode", mode.String()).
			Str("point", rider.String()).
			Str("line", closest.Line.PrimaryIdentifier).
			Str("stop", closest.Stop.PrimaryName).
			Msg("No stop passed the direction filter, falling back to closest stop")

		return closest, nil
	}

	return index.pickCandidate(candidates, mode == SearchModeBoarding), nil
}

func (index *StopIndex) pickCandidate(candidates []*IndexedStop, ascending bool) *IndexedStop {
	slices.SortStableFunc(candidates, func(a, b *IndexedStop) int {
		if ascending {
			return compareDistance(a.DistanceMeters, b.DistanceMeters)
		}
		return compareDistance(b.DistanceMeters, a.DistanceMeters)
	})

	best := candidates[0]
	if best.IsBus() {
		return best
	}

	for _, candidate := range candidates[1:] {
		if math.Abs(candidate.DistanceMeters-best.DistanceMeters) > index.TieEpsilonMeters {
			break
		}

		if candidate.IsBus() {
			return candidate
		}
	}

	return best
}

func compareDistance(a float64, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
