package insertrecords

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Load reads every YAML document in every file under directory
func Load(directory string) ([]*InsertDefinition, error) {
	var definitions []*InsertDefinition

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading insert-record file")

			insertYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(insertYaml))

			for {
				var insertDefinition InsertDefinition
				err := decoder.Decode(&insertDefinition)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}

				if err := insertDefinition.Validate(); err != nil {
					return err
				}

				definitions = append(definitions, &insertDefinition)
			}

			return nil
		})

	return definitions, err
}

func Insert(ctx context.Context, directory string) error {
	definitions, err := Load(directory)
	if err != nil {
		return err
	}

	for _, definition := range definitions {
		if err := definition.Upsert(ctx); err != nil {
			return err
		}
	}

	log.Info().Int("records", len(definitions)).Msg("Inserted records")

	return nil
}
