package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var envOnce sync.Once

// LoadEnv loads a .env file from the working directory or its parent, once.
// Existing environment variables are never overwritten.
func LoadEnv() {
	envOnce.Do(func() {
		for _, candidate := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			if err := godotenv.Load(candidate); err != nil {
				logrus.Warnf("Error loading %s: %v", candidate, err)
			} else {
				logrus.Debugf("Loaded environment variables from %s", candidate)
			}
			return
		}
	})
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
