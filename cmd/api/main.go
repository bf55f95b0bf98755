package main

import (
	"go.uber.org/zap"

	"github.com/vibecoding/landing-service/internal/config"
	"github.com/vibecoding/landing-service/internal/events"
	"github.com/vibecoding/landing-service/internal/httpserver"
	"github.com/vibecoding/landing-service/internal/store"
)

// main boots the service: config → DB → schema → HTTP server.
func main() {
	logger := zap.Must(zap.NewProduction()).Sugar()
	defer logger.Sync()

	// Load runtime config from environment (PORT, DB_URL, WEBHOOK_SECRET, PUBLIC_DIR).
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("config load failed", "error", err)
	}

	// Connect to durable storage (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(cfg.DBURL)
	if err != nil {
		logger.Fatalw("postgres connect failed", "error", err)
	}
	defer db.Close()

	// Ensure required tables/indexes exist so `docker compose up --build` is enough.
	if err := db.EnsureSchema(); err != nil {
		logger.Fatalw("schema bootstrap failed", "error", err)
	}

	recorder := events.NewRecorder(db, logger)
	router := httpserver.NewRouter(cfg, db, recorder, logger)

	logger.Infow("server started", "addr", cfg.Addr())
	logger.Fatal(router.Run(cfg.Addr()))
}
