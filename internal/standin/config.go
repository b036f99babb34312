package standin

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds stand-in server options.
type Config struct {
	Addr       string
	JWTSecret  string
	TokenTTL   time.Duration
	Seed       bool
	BcryptCost int

	Logger *slog.Logger
}

// LoadConfig reads an optional .env file and the STANDIN_* variables. A
// random signing secret is generated when STANDIN_JWT_SECRET is unset, so
// tokens do not survive a restart.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:       getEnv("STANDIN_ADDR", ":5000"),
		JWTSecret:  os.Getenv("STANDIN_JWT_SECRET"),
		TokenTTL:   24 * time.Hour,
		Seed:       true,
		BcryptCost: bcrypt.DefaultCost,
	}
	if v := os.Getenv("STANDIN_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("STANDIN_TOKEN_TTL: invalid duration %q", v)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("STANDIN_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("STANDIN_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.JWTSecret = secret
	}
	return cfg, nil
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
