package planner

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/transitline/transitline/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTransferThresholdMeters = 600.0
	DefaultTieEpsilonMeters        = 1.0
)

type Config struct {
	TransferThresholdMeters float64 `yaml:"transfer_threshold_meters" validate:"gt=0"`
	TieEpsilonMeters        float64 `yaml:"tie_epsilon_meters" validate:"gte=0"`
}

func DefaultConfig() Config {
	return Config{
		TransferThresholdMeters: DefaultTransferThresholdMeters,
		TieEpsilonMeters:        DefaultTieEpsilonMeters,
	}
}

// LoadConfig reads the optional YAML file at path, applies environment overrides and validates the result
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("reading planner config: %w", err)
		}

		if err := yaml.Unmarshal(file, &config); err != nil {
			return config, fmt.Errorf("parsing planner config %s: %w", path, err)
		}
	}

	var err error
	config.TransferThresholdMeters, err = util.GetEnvironmentFloat("TRANSFER_THRESHOLD_METERS", config.TransferThresholdMeters)
	if err != nil {
		return config, fmt.Errorf("TRANSITLINE_TRANSFER_THRESHOLD_METERS: %w", err)
	}

	config.TieEpsilonMeters, err = util.GetEnvironmentFloat("TIE_EPSILON_METERS", config.TieEpsilonMeters)
	if err != nil {
		return config, fmt.Errorf("TRANSITLINE_TIE_EPSILON_METERS: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return config, fmt.Errorf("invalid planner config: %w", err)
	}

	return config, nil
}
