package dataaggregator

import (
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/dataaggregator/source"
)

type DataSource interface {
	GetName() string
	Supports() []reflect.Type
	Lookup(any) (interface{}, error)
}

type Aggregator struct {
	Sources []DataSource
}

var GlobalAggregator Aggregator

var ErrNoMatchingSource = errors.New("failed to find a matching data source for type")

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

func Lookup[T any](query any) (T, error) {
	return LookupWith[T](&GlobalAggregator, query)
}

// LookupWith asks every source supporting T in registration order, moving on when a source rejects the query
func LookupWith[T any](aggregator *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range aggregator.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(query)

		if errors.Is(returnError, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		return returnValue.(T), returnError
	}

	return empty, ErrNoMatchingSource
}
