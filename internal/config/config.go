package config

import (
	"fmt"
	"log/slog"
	"os"

	"bookservice/internal/logging"

	"github.com/joho/godotenv"
)

const (
	EnvLogLevel = "BOOKSERVICE_LOG_LEVEL"
	EnvOutput   = "BOOKSERVICE_OUTPUT"
)

// Config holds process-level settings.
type Config struct {
	LogLevel slog.Level
	Output   string
}

// LoadEnvFiles reads .env and .env.local from the working directory.
func LoadEnvFiles() {
	// Do not override environment provided by the runtime.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the env files and then the environment.
func Load() (Config, error) {
	LoadEnvFiles()

	level, err := logging.ParseLevel(getEnv(EnvLogLevel, "info"))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}

	output := getEnv(EnvOutput, "json")
	if output != "json" && output != "yaml" {
		return Config{}, fmt.Errorf("%s: unsupported output format %q", EnvOutput, output)
	}

	return Config{LogLevel: level, Output: output}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
