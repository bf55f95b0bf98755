package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config contains runtime configuration required by the service.
type Config struct {
	Port          int
	DBURL         string
	WebhookSecret string // empty disables the payment webhook endpoint
	PublicDir     string
}

// Load reads required values from environment variables.
//
//	PORT            listening port (default 3000)
//	DB_URL          Postgres connection string (required)
//	WEBHOOK_SECRET  shared secret for X-Webhook-Secret (optional)
//	PUBLIC_DIR      landing page directory (default ./public)
func Load() (Config, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:          3000,
		DBURL:         strings.TrimSpace(k.String("DB_URL")),
		WebhookSecret: strings.TrimSpace(k.String("WEBHOOK_SECRET")),
		PublicDir:     strings.TrimSpace(k.String("PUBLIC_DIR")),
	}

	if raw := strings.TrimSpace(k.String("PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, errors.New("PORT must be a valid port number")
		}
		cfg.Port = port
	}

	if cfg.DBURL == "" {
		return Config{}, errors.New("DB_URL required")
	}
	if cfg.PublicDir == "" {
		cfg.PublicDir = "./public"
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
