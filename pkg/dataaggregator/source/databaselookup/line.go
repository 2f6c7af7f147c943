package databaselookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/query"
	"github.com/transitline/transitline/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
)

var ErrLineNotFound = errors.New("could not find a matching Line")

func (s Source) LineQuery(lineQuery query.Line) (*ctdf.Line, error) {
	cacheItemPath := fmt.Sprintf("cachedresults/linequery/%s", lineQuery.PrimaryIdentifier)

	// Load from cache
	if s.CachedResults != nil {
		cachedObject, err := s.CachedResults.Cache.Get(context.Background(), cacheItemPath)
		if err == nil {
			var line *ctdf.Line
			if err := json.Unmarshal([]byte(cachedObject), &line); err != nil {
				return nil, err
			}

			return line, nil
		}
	}

	linesCollection := database.GetCollection("lines")
	var line *ctdf.Line
	linesCollection.FindOne(context.Background(), lineQuery.ToBson()).Decode(&line)

	if line == nil {
		return nil, ErrLineNotFound
	}

	line.SortStops()

	// Save into cache
	if s.CachedResults != nil {
		lineJson, _ := json.Marshal(line)
		if err := s.CachedResults.Cache.Set(context.Background(), cacheItemPath, string(lineJson)); err != nil {
			log.Error().Err(err).Str("line", line.PrimaryIdentifier).Msg("Failed to cache line")
		}
	}

	return line, nil
}

func (s Source) ActiveLinesQuery(activeLinesQuery query.ActiveLines) ([]*ctdf.Line, error) {
	return s.findLines(context.Background(), activeLinesQuery.ToBson())
}

// ListLines reads every active line with a single query so the planner sees one consistent snapshot
func (s Source) ListLines(ctx context.Context) ([]*ctdf.Line, error) {
	activeLines := query.ActiveLines{}

	return s.findLines(ctx, activeLines.ToBson())
}

func (s Source) findLines(ctx context.Context, filter bson.M) ([]*ctdf.Line, error) {
	linesCollection := database.GetCollection("lines")

	cursor, err := linesCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var lines []*ctdf.Line
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}

	for _, line := range lines {
		line.SortStops()
	}

	return lines, nil
}
