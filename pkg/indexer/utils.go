package indexer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/elastic_client"
)

func deleteOldIndexes(ctx context.Context, indexWildcard string, indexName string) error {
	catReq := esapi.CatIndicesRequest{
		Index:  []string{indexWildcard},
		Format: "json",
	}

	resp, err := catReq.Do(ctx, elastic_client.Client)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}
	defer resp.Body.Close()

	var indexes []struct {
		Index string `json:"index"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&indexes); err != nil {
		return err
	}

	for _, index := range indexes {
		if index.Index == indexName {
			continue
		}

		deleteReq := esapi.IndicesDeleteRequest{
			Index: []string{index.Index},
		}

		deleteResp, err := deleteReq.Do(ctx, elastic_client.Client)
		if err != nil {
			return err
		}
		deleteResp.Body.Close()

		log.Info().Str("index", index.Index).Msg("Delete old index")
	}

	return nil
}
