package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
)

const DEFAULT_ENV_DIR = "config/envs"

// LoadEnv loads <ENV_DIR>/.env.<env> into the process environment. Variables
// already set in the OS environment win. It reports whether a file was read.
func LoadEnv(env string) bool {
	dir := os.Getenv("ENV_DIR")
	if dir == "" {
		dir = DEFAULT_ENV_DIR
	}

	envFile := filepath.Join(dir, ".env."+env)
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment",
			slog.String("file", envFile))
		return false
	}

	slog.Debug("[Config] Loaded env file", slog.String("file", envFile))
	return true
}
