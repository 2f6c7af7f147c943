package query

import (
	"github.com/transitline/transitline/pkg/ctdf"
	"go.mongodb.org/mongo-driver/bson"
)

type Line struct {
	PrimaryIdentifier string
}

func (l *Line) ToBson() bson.M {
	return bson.M{"primaryidentifier": l.PrimaryIdentifier}
}

// ActiveLines lists every active line, optionally restricted to a single transport type
type ActiveLines struct {
	TransportType ctdf.TransportType
}

func (a *ActiveLines) ToBson() bson.M {
	filter := bson.M{"status": ctdf.LineStatusActive}

	if a.TransportType != "" {
		filter["transporttype"] = a.TransportType
	}

	return filter
}
