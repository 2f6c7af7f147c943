package dataaggregator

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/source"
)

type lineQuery struct {
	Name string
}

type fakeSource struct {
	name     string
	supports []reflect.Type
	lookup   func(q any) (interface{}, error)
	calls    int
}

func (s *fakeSource) GetName() string {
	return s.name
}

func (s *fakeSource) Supports() []reflect.Type {
	return s.supports
}

func (s *fakeSource) Lookup(q any) (interface{}, error) {
	s.calls++
	return s.lookup(q)
}

func TestLookupWithDispatchesOnType(t *testing.T) {
	lineSource := &fakeSource{
		name:     "lines",
		supports: []reflect.Type{reflect.TypeOf(ctdf.Line{})},
		lookup: func(q any) (interface{}, error) {
			return &ctdf.Line{PrimaryName: q.(lineQuery).Name}, nil
		},
	}
	vehicleSource := &fakeSource{
		name:     "vehicles",
		supports: []reflect.Type{reflect.TypeOf([]*ctdf.Vehicle{})},
		lookup: func(q any) (interface{}, error) {
			return []*ctdf.Vehicle{{PrimaryIdentifier: "V1"}}, nil
		},
	}

	aggregator := &Aggregator{}
	aggregator.RegisterSource(vehicleSource)
	aggregator.RegisterSource(lineSource)

	line, err := LookupWith[*ctdf.Line](aggregator, lineQuery{Name: "12"})
	assert.NoError(t, err)
	assert.Equal(t, "12", line.PrimaryName)

	vehicles, err := LookupWith[[]*ctdf.Vehicle](aggregator, lineQuery{})
	assert.NoError(t, err)
	assert.Len(t, vehicles, 1)

	assert.Equal(t, 1, lineSource.calls)
	assert.Equal(t, 1, vehicleSource.calls)
}

func TestLookupWithSkipsUnsupportedQueries(t *testing.T) {
	rejecting := &fakeSource{
		name:     "rejecting",
		supports: []reflect.Type{reflect.TypeOf(ctdf.Line{})},
		lookup: func(q any) (interface{}, error) {
			return nil, source.UnsupportedSourceError
		},
	}
	accepting := &fakeSource{
		name:     "accepting",
		supports: []reflect.Type{reflect.TypeOf(ctdf.Line{})},
		lookup: func(q any) (interface{}, error) {
			return &ctdf.Line{PrimaryName: "accepted"}, nil
		},
	}

	aggregator := &Aggregator{Sources: []DataSource{rejecting, accepting}}

	line, err := LookupWith[*ctdf.Line](aggregator, lineQuery{})
	assert.NoError(t, err)
	assert.Equal(t, "accepted", line.PrimaryName)
}

func TestLookupWithReturnsSourceError(t *testing.T) {
	lookupErr := errors.New("not found")
	failing := &fakeSource{
		name:     "failing",
		supports: []reflect.Type{reflect.TypeOf(ctdf.Line{})},
		lookup: func(q any) (interface{}, error) {
			return nil, lookupErr
		},
	}

	aggregator := &Aggregator{Sources: []DataSource{failing}}

	line, err := LookupWith[*ctdf.Line](aggregator, lineQuery{})
	assert.Nil(t, line)
	assert.ErrorIs(t, err, lookupErr)
}

func TestLookupWithNoMatchingSource(t *testing.T) {
	aggregator := &Aggregator{}

	_, err := LookupWith[*ctdf.Incident](aggregator, lineQuery{})
	assert.ErrorIs(t, err, ErrNoMatchingSource)
}
