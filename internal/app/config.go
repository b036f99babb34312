package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"discount24/internal/transport"
)

// DefaultAPIURL is the marketplace service used when none is configured.
const DefaultAPIURL = "http://127.0.0.1:5000"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        // config directory, e.g. $HOME/.discount24
	APIURL     string        // service base URL
	Timeout    time.Duration // per-call bound
	Passphrase string        // optional; seals the token file when set
	LogLevel   string

	HTTP   transport.Doer // optional; defaults to an instrumented http.Client
	Logger *slog.Logger   // optional; defaults to slog.Default()
}

// LoadConfig reads an optional .env file and then the DISCOUNT24_* and
// LOG_LEVEL variables. Values already present in the environment win over
// the file.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Home:       os.Getenv("DISCOUNT24_HOME"),
		APIURL:     getEnv("DISCOUNT24_API_URL", DefaultAPIURL),
		Timeout:    transport.DefaultTimeout,
		Passphrase: os.Getenv("DISCOUNT24_PASSPHRASE"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
	}
	if v := os.Getenv("DISCOUNT24_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("DISCOUNT24_TIMEOUT: invalid duration %q", v)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// DefaultHome returns ~/.discount24.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".discount24"), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
