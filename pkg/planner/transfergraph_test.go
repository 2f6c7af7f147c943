package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitline/transitline/pkg/ctdf"
)

func TestBuildTransferGraph(t *testing.T) {
	l1 := busLine("L1", namedAt("A", 0, 0), namedAt("B", 0, 1))
	l2 := busLine("L2", namedAt("C", 0, 1.001), namedAt("D", 0, 2))
	l3 := busLine("L3", namedAt("E", 0, 5), namedAt("F", 0, 6))

	graph := BuildTransferGraph([]*ctdf.Line{l1, l2, l3}, DefaultTransferThresholdMeters)

	assert.Equal(t, []string{l1.PrimaryIdentifier, l2.PrimaryIdentifier, l3.PrimaryIdentifier}, graph.Lines)
	require.Len(t, graph.Edges, 1)

	edge := graph.Edges[0]
	assert.Equal(t, l1.PrimaryIdentifier, edge.From)
	assert.Equal(t, l2.PrimaryIdentifier, edge.To)
	assert.Equal(t, "B", edge.FromStop.PrimaryName)
	assert.Equal(t, "C", edge.ToStop.PrimaryName)
	assert.InDelta(t, 111.2, edge.WalkingDistanceMeters, 0.1)

	// Undirected: visible from both sides with the stops swapped
	require.Len(t, graph.Neighbours(l2.PrimaryIdentifier), 1)
	back := graph.Neighbours(l2.PrimaryIdentifier)[0]
	assert.Equal(t, l1.PrimaryIdentifier, back.To)
	assert.Equal(t, "C", back.FromStop.PrimaryName)
	assert.Equal(t, "B", back.ToStop.PrimaryName)

	assert.Empty(t, graph.Neighbours(l3.PrimaryIdentifier))
}

func TestBuildTransferGraphKeepsAllEdges(t *testing.T) {
	l1 := busLine("L1", namedAt("A", 0, 0), namedAt("B", 0, 0.002))
	l2 := metroLine("L2", namedAt("C", 0, 0.001), namedAt("D", 0, 0.003))

	graph := BuildTransferGraph([]*ctdf.Line{l1, l2}, DefaultTransferThresholdMeters)

	var pairs []string
	for _, edge := range graph.Edges {
		pairs = append(pairs, edge.FromStop.PrimaryName+edge.ToStop.PrimaryName)
	}

	assert.Equal(t, []string{"AC", "AD", "BC", "BD"}, pairs)
}

func TestBuildTransferGraphIgnoresSameName(t *testing.T) {
	l1 := busLine("L1", namedAt("Central", 0, 0))
	l2 := metroLine("L2", namedAt("Central", 0, 0.001))

	graph := BuildTransferGraph([]*ctdf.Line{l1, l2}, DefaultTransferThresholdMeters)

	assert.Empty(t, graph.Edges)
}

func TestBuildTransferGraphThreshold(t *testing.T) {
	// ~556 m apart
	l1 := busLine("L1", namedAt("A", 0, 0))
	l2 := busLine("L2", namedAt("B", 0, 0.005))

	assert.Len(t, BuildTransferGraph([]*ctdf.Line{l1, l2}, 600).Edges, 1)
	assert.Empty(t, BuildTransferGraph([]*ctdf.Line{l1, l2}, 500).Edges)
}

func TestBuildTransferGraphDeterministic(t *testing.T) {
	var lines []*ctdf.Line
	for i := 0; i < 12; i++ {
		offset := float64(i) * 0.003
		lines = append(lines, busLine(string(rune('A'+i)), at(0, offset), at(0.001, offset+0.001)))
	}

	first := BuildTransferGraph(lines, DefaultTransferThresholdMeters)
	for i := 0; i < 10; i++ {
		again := BuildTransferGraph(lines, DefaultTransferThresholdMeters)

		require.Len(t, again.Edges, len(first.Edges))
		for j := range first.Edges {
			assert.Equal(t, first.Edges[j].From, again.Edges[j].From)
			assert.Equal(t, first.Edges[j].To, again.Edges[j].To)
			assert.Same(t, first.Edges[j].FromStop, again.Edges[j].FromStop)
			assert.Same(t, first.Edges[j].ToStop, again.Edges[j].ToStop)
		}
	}
}

func TestShortestPath(t *testing.T) {
	lines := chainLines()
	graph := BuildTransferGraph(lines, DefaultTransferThresholdMeters)

	path, found := graph.ShortestPath(lines[0].PrimaryIdentifier, lines[3].PrimaryIdentifier)
	require.True(t, found)
	require.Len(t, path, 3)

	for i, edge := range path {
		assert.Equal(t, lines[i].PrimaryIdentifier, edge.From)
		assert.Equal(t, lines[i+1].PrimaryIdentifier, edge.To)
	}

	// Travelling backwards uses the reversed edges
	path, found = graph.ShortestPath(lines[3].PrimaryIdentifier, lines[1].PrimaryIdentifier)
	require.True(t, found)
	require.Len(t, path, 2)
	assert.Equal(t, lines[3].PrimaryIdentifier, path[0].From)
	assert.Equal(t, lines[1].PrimaryIdentifier, path[1].To)

	path, found = graph.ShortestPath(lines[2].PrimaryIdentifier, lines[2].PrimaryIdentifier)
	assert.True(t, found)
	assert.Empty(t, path)

	_, found = graph.ShortestPath(lines[0].PrimaryIdentifier, "TL:LINE:Bus:missing")
	assert.False(t, found)
}

func TestBuildTransferGraphSkipsStopsWithoutPoint(t *testing.T) {
	l1 := busLine("L1", namedAt("A", 10, 0), namedAt("B", 10, 1))
	l1.Stops = append(l1.Stops, &ctdf.LineStop{PrimaryName: "bad1", Sequence: 3, Location: &ctdf.Location{Type: "Point"}})

	l2 := busLine("L2", namedAt("C", 20, 0), namedAt("D", 20, 1))
	l2.Stops = append(l2.Stops, &ctdf.LineStop{PrimaryName: "bad2", Sequence: 3, Location: &ctdf.Location{Type: "Point", Coordinates: []float64{1}}})

	graph := BuildTransferGraph([]*ctdf.Line{l1, l2}, DefaultTransferThresholdMeters)

	assert.Empty(t, graph.Edges)
	assert.Empty(t, graph.Neighbours(l1.PrimaryIdentifier))
}
