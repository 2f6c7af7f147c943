package routeplanner

import (
	"reflect"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/dataaggregator/source"
	"github.com/transitline/transitline/pkg/metrics"
	"github.com/transitline/transitline/pkg/planner"
)

type Source struct {
	Planner *planner.Planner
	Metrics *metrics.Collector
}

func (s Source) GetName() string {
	return "Route Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Itinerary{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.RoutePlan:
		return s.RoutePlanQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}
