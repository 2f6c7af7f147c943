package planner

import (
	"github.com/sourcegraph/conc/iter"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/geo"
)

// TransferEdge links two lines through a pair of stops within walking distance.
// From/To are line identifiers and FromStop belongs to From.
type TransferEdge struct {
	From string
	To   string

	FromStop *ctdf.LineStop
	ToStop   *ctdf.LineStop

	WalkingDistanceMeters float64
}

func (e *TransferEdge) reversed() *TransferEdge {
	return &TransferEdge{
		From:                  e.To,
		To:                    e.From,
		FromStop:              e.ToStop,
		ToStop:                e.FromStop,
		WalkingDistanceMeters: e.WalkingDistanceMeters,
	}
}

// TransferGraph is an undirected graph of lines, every edge is kept in discovery order
type TransferGraph struct {
	Lines []string
	Edges []*TransferEdge

	adjacency map[string][]*TransferEdge
}

type linePair struct {
	a *ctdf.Line
	b *ctdf.Line
}

func BuildTransferGraph(lines []*ctdf.Line, thresholdMeters float64) *TransferGraph {
	graph := &TransferGraph{
		adjacency: map[string][]*TransferEdge{},
	}

	var pairs []linePair
	for i, line := range lines {
		graph.Lines = append(graph.Lines, line.PrimaryIdentifier)

		for _, other := range lines[i+1:] {
			pairs = append(pairs, linePair{a: line, b: other})
		}
	}

	pairEdges := iter.Map(pairs, func(pair *linePair) []*TransferEdge {
		return transferEdgesBetween(pair.a, pair.b, thresholdMeters)
	})

	for _, edges := range pairEdges {
		for _, edge := range edges {
			graph.Edges = append(graph.Edges, edge)
			graph.adjacency[edge.From] = append(graph.adjacency[edge.From], edge)
			graph.adjacency[edge.To] = append(graph.adjacency[edge.To], edge.reversed())
		}
	}

	return graph
}

func transferEdgesBetween(a *ctdf.Line, b *ctdf.Line, thresholdMeters float64) []*TransferEdge {
	var edges []*TransferEdge

	for _, stopA := range a.Stops {
		if !stopA.Location.HasPoint() {
			continue
		}

		for _, stopB := range b.Stops {
			if !stopB.Location.HasPoint() || stopA.PrimaryName == stopB.PrimaryName {
				continue
			}

			distance := geo.DistanceMeters(stopA.Location.Point(), stopB.Location.Point())
			if distance > thresholdMeters {
				continue
			}

			edges = append(edges, &TransferEdge{
				From:                  a.PrimaryIdentifier,
				To:                    b.PrimaryIdentifier,
				FromStop:              stopA,
				ToStop:                stopB,
				WalkingDistanceMeters: distance,
			})
		}
	}

	return edges
}

// Neighbours returns the edges leaving line, oriented so that From is line
func (g *TransferGraph) Neighbours(line string) []*TransferEdge {
	return g.adjacency[line]
}

// ShortestPath runs a breadth-first search and returns the edges of the fewest-transfer path.
// The first edge to reach a line is the one kept for it.
func (g *TransferGraph) ShortestPath(from string, to string) ([]*TransferEdge, bool) {
	if from == to {
		return []*TransferEdge{}, true
	}

	visited := map[string]bool{from: true}
	parent := map[string]*TransferEdge{}
	queue := []string{from}

	for len(queue) > 0 && !visited[to] {
		current := queue[0]
		queue = queue[1:]

		for _, edge := range g.adjacency[current] {
			if visited[edge.To] {
				continue
			}

			visited[edge.To] = true
			parent[edge.To] = edge
			queue = append(queue, edge.To)
		}
	}

	if !visited[to] {
		return nil, false
	}

	var path []*TransferEdge
	for line := to; line != from; line = parent[line].From {
		path = append([]*TransferEdge{parent[line]}, path...)
	}

	return path, true
}
