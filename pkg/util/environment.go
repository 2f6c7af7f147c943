package util

import (
	"os"
	"strconv"
	"strings"
)

const EnvironmentPrefix = "TRANSITLINE_"

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)

		environmentVariables[pair[0]] = pair[1]
	}

	return environmentVariables
}

// GetEnvironmentVariable looks up a TRANSITLINE_ prefixed variable, falling back to defaultValue when unset
func GetEnvironmentVariable(name string, defaultValue string) string {
	if value := os.Getenv(EnvironmentPrefix + name); value != "" {
		return value
	}

	return defaultValue
}

func GetEnvironmentFloat(name string, defaultValue float64) (float64, error) {
	value := os.Getenv(EnvironmentPrefix + name)
	if value == "" {
		return defaultValue, nil
	}

	return strconv.ParseFloat(value, 64)
}
