package databaselookup

import (
	"reflect"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/dataaggregator/source"
	"github.com/transitline/transitline/pkg/dataaggregator/source/cachedresults"
)

type Source struct {
	CachedResults *cachedresults.Cache
}

func (s *Source) Setup() {
	s.CachedResults = &cachedresults.Cache{}
	s.CachedResults.Setup()
}

func (s Source) GetName() string {
	return "Database Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(ctdf.Line{}),
		reflect.TypeOf([]*ctdf.Line{}),
		reflect.TypeOf([]*ctdf.StopOnLine{}),
		reflect.TypeOf(ctdf.Vehicle{}),
		reflect.TypeOf([]*ctdf.Vehicle{}),
		reflect.TypeOf([]*ctdf.ServiceAlert{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Line:
		return s.LineQuery(q)
	case query.ActiveLines:
		return s.ActiveLinesQuery(q)
	case query.StopsNearby:
		return s.StopsNearbyQuery(q)
	case query.Vehicle:
		return s.VehicleQuery(q)
	case query.VehiclesForLine:
		return s.VehiclesForLineQuery(q)
	case query.ServiceAlertsForMatchingIdentifier:
		return s.ServiceAlertsForMatchingIdentifierQuery(q)
	}

	return nil, source.UnsupportedSourceError
}
