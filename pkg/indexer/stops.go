package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/dataaggregator/source/databaselookup"
	"github.com/transitline/transitline/pkg/elastic_client"
)

const stopIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"PrimaryName": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"Location": {
				"type": "geo_point"
			},
			"LineRef": {
				"type": "keyword"
			},
			"LineName": {
				"type": "keyword"
			},
			"TransportType": {
				"type": "keyword"
			},
			"Sequence": {
				"type": "integer"
			}
		}
	}
}`

type geoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type stopDocument struct {
	PrimaryName   string
	Location      geoPoint
	LineRef       string
	LineName      string
	TransportType ctdf.TransportType
	Sequence      int
}

// stopDocuments flattens every stop of every active line
func stopDocuments(lines []*ctdf.Line) []*stopDocument {
	var documents []*stopDocument

	for _, line := range lines {
		if line == nil || !line.IsActive() {
			continue
		}

		for _, stop := range line.Stops {
			if !stop.Location.HasPoint() {
				continue
			}

			point := stop.Location.Point()

			documents = append(documents, &stopDocument{
				PrimaryName:   stop.PrimaryName,
				Location:      geoPoint{Lat: point.Latitude, Lon: point.Longitude},
				LineRef:       line.PrimaryIdentifier,
				LineName:      line.PrimaryName,
				TransportType: line.TransportType,
				Sequence:      stop.Sequence,
			})
		}
	}

	return documents
}

func IndexStops(ctx context.Context) error {
	indexName := fmt.Sprintf("transitline-stops-%d", time.Now().Unix())

	if err := createStopIndex(ctx, indexName); err != nil {
		return err
	}

	lines, err := databaselookup.Source{}.ListLines(ctx)
	if err != nil {
		return err
	}

	documents := stopDocuments(lines)
	for _, document := range documents {
		jsonStop, err := json.Marshal(document)
		if err != nil {
			return err
		}

		elastic_client.IndexRequest(indexName, bytes.NewReader(jsonStop))
	}

	log.Info().Int("stops", len(documents)).Msg("Sent all index requests to queue")

	return deleteOldIndexes(ctx, "transitline-stops-*", indexName)
}

func createStopIndex(ctx context.Context, indexName string) error {
	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(stopIndexMapping),
	}

	resp, err := indexReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to create index %s: %s", indexName, responseBytes)
	}

	return nil
}
