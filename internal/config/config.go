// Package config loads the subscan configuration and the optional .env file
// that seeds SUBSCAN_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"fjacquet/subscan/internal/logging"

	"github.com/joho/godotenv"
)

var envOnce sync.Once

// LoadEnv loads environment variables from a .env file in the working directory
// or its parent. Variables already set in the environment are not overridden.
// It only runs once per process.
func LoadEnv(logger logging.Logger) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	envOnce.Do(func() {
		envFile := findEnvFile()
		if envFile == "" {
			logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			logger.WithError(err).Warn("Error loading .env file",
				logging.Field{Key: logging.FieldFile, Value: envFile})
			return
		}
		logger.Debug("Loaded environment variables",
			logging.Field{Key: logging.FieldFile, Value: envFile})
	})
}

func findEnvFile() string {
	for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
