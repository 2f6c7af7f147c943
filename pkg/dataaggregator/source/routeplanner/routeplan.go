package routeplanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/elastic_client"
	"github.com/transitline/transitline/pkg/planner"
)

type planAnalytics struct {
	Timestamp time.Time

	Origin      *ctdf.Location
	Destination *ctdf.Location

	Result             string
	Error              string `json:",omitempty"`
	DurationSeconds    float64
	Transfers          int
	Lines              []string
	TotalWalkingMeters float64
}

func (s Source) RoutePlanQuery(q query.RoutePlan) (*ctdf.Itinerary, error) {
	ctx := q.Context
	if ctx == nil {
		ctx = context.Background()
	}

	startTime := time.Now()
	itinerary, err := s.Planner.PlanRoute(ctx, q.Origin, q.Destination)
	duration := time.Since(startTime)

	result := PlanResult(itinerary, err)

	transfers := -1
	analytics := planAnalytics{
		Timestamp:       startTime,
		Origin:          ctdf.NewLocation(q.Origin),
		Destination:     ctdf.NewLocation(q.Destination),
		Result:          result,
		DurationSeconds: duration.Seconds(),
	}

	if err != nil {
		analytics.Error = err.Error()
	} else {
		transfers = len(itinerary.Transfers)
		analytics.Transfers = transfers
		analytics.Lines = itinerary.LineRefs()
		analytics.TotalWalkingMeters = itinerary.TotalWalkingMeters
	}

	if s.Metrics != nil {
		s.Metrics.ObservePlan(result, duration, transfers)
	}

	if err := elastic_client.IndexDocument(fmt.Sprintf("transitline-plans-%d-%02d", startTime.Year(), startTime.Month()), analytics); err != nil {
		log.Error().Err(err).Msg("Failed to encode plan analytics")
	}

	log.Debug().
		Str("origin", q.Origin.String()).
		Str("destination", q.Destination.String()).
		Str("result", result).
		Dur("duration", duration).
		Msg("Planned route")

	return itinerary, err
}

// PlanResult is the metric label for the outcome of a planning request
func PlanResult(itinerary *ctdf.Itinerary, err error) string {
	switch {
	case errors.Is(err, planner.ErrInvalidCoordinates):
		return "invalid"
	case errors.Is(err, planner.ErrNoCandidateFound):
		return "no_candidate"
	case errors.Is(err, planner.ErrNoRouteFound):
		return "no_route"
	case err != nil:
		return "error"
	case itinerary.Type == ctdf.ItineraryTypeDirect:
		return "direct"
	default:
		return "transfer"
	}
}
