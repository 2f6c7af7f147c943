package query

import (
	"context"

	"github.com/transitline/transitline/pkg/geo"
)

type RoutePlan struct {
	Context context.Context

	Origin      geo.Point
	Destination geo.Point
}
