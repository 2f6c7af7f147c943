package databaselookup

import (
	"context"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
)

func (s Source) StopsNearbyQuery(stopsQuery query.StopsNearby) ([]*ctdf.StopOnLine, error) {
	linesCollection := database.GetCollection("lines")

	cursor, err := linesCollection.Find(context.Background(), stopsQuery.ToBson())
	if err != nil {
		return nil, err
	}

	var lines []*ctdf.Line
	if err := cursor.All(context.Background(), &lines); err != nil {
		return nil, err
	}

	stops := []*ctdf.StopOnLine{}

	// The query matches whole lines so only keep the stops actually in the box
	for _, line := range lines {
		line.SortStops()

		for _, stop := range line.Stops {
			if !stop.Location.HasPoint() || !stopsQuery.Contains(stop.Location.Point()) {
				continue
			}

			stops = append(stops, &ctdf.StopOnLine{
				LineRef:       line.PrimaryIdentifier,
				LineName:      line.PrimaryName,
				TransportType: line.TransportType,
				Stop:          stop,
			})
		}
	}

	return stops, nil
}
