package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	SessionKey      string
	SessionTTL      time.Duration
	RateLimit       float64
	RateBurst       int
	LogLevel        string
	LogFormat       string
	StaticDir       string
	ShutdownTimeout time.Duration
}

func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

// MinSessionTTL bounds SESSION_TTL from below; idle sessions are swept every
// quarter TTL.
const MinSessionTTL = time.Minute

var ErrSessionKeyMissing = errors.New("SESSION_KEY environment variable is not set")

// Load reads an optional .env file, then the environment. Values already in
// the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:       getEnv("CALCFORM_ADDR", ":8080"),
		TLSCert:    os.Getenv("CALCFORM_TLS_CERT"),
		TLSKey:     os.Getenv("CALCFORM_TLS_KEY"),
		SessionKey: os.Getenv("SESSION_KEY"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		StaticDir:  getEnv("STATIC_DIR", "./static/main"),
	}
	var err error
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = floatEnv("RATE_LIMIT", 5); err != nil {
		return Config{}, err
	}
	if cfg.RateBurst, err = intEnv("RATE_BURST", 10); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks what the HTTP server needs beyond Load.
func (c Config) Validate() error {
	if c.SessionKey == "" {
		return ErrSessionKeyMissing
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("CALCFORM_TLS_CERT and CALCFORM_TLS_KEY must be set together")
	}
	if c.SessionTTL < MinSessionTTL {
		return fmt.Errorf("SESSION_TTL must be at least %s", MinSessionTTL)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
