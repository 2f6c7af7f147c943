package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
)

// LineSource provides a consistent snapshot of the active lines
type LineSource interface {
	ListLines(ctx context.Context) ([]*ctdf.Line, error)
}

// Planner is immutable once created and safe for concurrent use
type Planner struct {
	Source LineSource
	Config Config
}

func NewPlanner(source LineSource, config Config) *Planner {
	return &Planner{
		Source: source,
		Config: config,
	}
}

// PlanRoute finds a direct line between rider and destination or the fewest-transfer chain of lines.
// TotalWalkingMeters covers the walk to the first stop, every transfer and the walk from the last stop.
func (p *Planner) PlanRoute(ctx context.Context, rider geo.Point, destination geo.Point) (*ctdf.Itinerary, error) {
	if err := rider.Validate(); err != nil {
		return nil, fmt.Errorf("%w: rider %w", ErrInvalidCoordinates, err)
	}
	if err := destination.Validate(); err != nil {
		return nil, fmt.Errorf("%w: destination %w", ErrInvalidCoordinates, err)
	}

	lines, err := p.Source.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}

	index := NewStopIndex(lines)
	index.TieEpsilonMeters = p.Config.TieEpsilonMeters

	boardStop, err := index.FindNearestStop(rider, destination, SearchModeBoarding)
	if err != nil {
		return nil, err
	}

	alightStop, err := index.FindNearestStop(destination, rider, SearchModeAlighting)
	if err != nil {
		return nil, err
	}

	itinerary := &ctdf.Itinerary{
		Origin:             ctdf.NewLocation(rider),
		Destination:        ctdf.NewLocation(destination),
		TotalWalkingMeters: boardStop.DistanceMeters + alightStop.DistanceMeters,
	}

	if boardStop.Line.PrimaryIdentifier == alightStop.Line.PrimaryIdentifier {
		itinerary.Type = ctdf.ItineraryTypeDirect
		itinerary.Legs = []*ctdf.ItineraryLeg{
			newLeg(boardStop.Line, boardStop.Stop, alightStop.Stop),
		}

		return itinerary, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	graph := BuildTransferGraph(index.AllLines(), p.Config.TransferThresholdMeters)

	log.Debug().
		Int("lines", len(graph.Lines)).
		Int("edges", len(graph.Edges)).
		Msg("Built transfer graph")

	path, found := graph.ShortestPath(boardStop.Line.PrimaryIdentifier, alightStop.Line.PrimaryIdentifier)
	if !found {
		return nil, fmt.Errorf("%w: %s to %s", ErrNoRouteFound, boardStop.Line.PrimaryIdentifier, alightStop.Line.PrimaryIdentifier)
	}

	itinerary.Type = ctdf.ItineraryTypeTransfer

	currentLine := boardStop.Line
	currentBoardStop := boardStop.Stop

	for _, edge := range path {
		itinerary.Legs = append(itinerary.Legs, newLeg(currentLine, currentBoardStop, edge.FromStop))
		itinerary.Transfers = append(itinerary.Transfers, &ctdf.ItineraryTransfer{
			FromLineRef:           edge.From,
			ToLineRef:             edge.To,
			FromStop:              edge.FromStop,
			ToStop:                edge.ToStop,
			WalkingDistanceMeters: edge.WalkingDistanceMeters,
		})
		itinerary.TotalWalkingMeters += edge.WalkingDistanceMeters

		currentLine = index.Line(edge.To)
		currentBoardStop = edge.ToStop
	}

	itinerary.Legs = append(itinerary.Legs, newLeg(currentLine, currentBoardStop, alightStop.Stop))

	return itinerary, nil
}

func newLeg(line *ctdf.Line, board *ctdf.LineStop, alight *ctdf.LineStop) *ctdf.ItineraryLeg {
	return &ctdf.ItineraryLeg{
		LineRef:    line.PrimaryIdentifier,
		Line:       line,
		BoardStop:  board,
		AlightStop: alight,
	}
}
