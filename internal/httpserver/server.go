package httpserver

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vibecoding/landing-service/internal/config"
	"github.com/vibecoding/landing-service/internal/handlers"
)

// Store adds the connectivity probe the readiness endpoint needs on top of
// the handler-facing gateway surface.
type Store interface {
	handlers.Store
	Ping(ctx context.Context) error
}

// NewRouter wires public endpoints, the API, and the landing page server.
// Public: /health, /ready, the landing markup and its assets.
// API: /api/leads (open), /api/webhook/payment (shared secret).
func NewRouter(cfg config.Config, st Store, rec handlers.Recorder, logger *zap.SugaredLogger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running. Touches nothing else, so
	// it stays green even when the store is down.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	// Readiness: confirms the DB dependency is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	handlers.RegisterLeadRoutes(r, st, rec, logger)
	handlers.RegisterWebhookRoutes(r, st, cfg.WebhookSecret, logger)

	// Everything unmatched is the landing page's territory: serve the file
	// when it exists, 404 asset-looking paths, fall back to index.html.
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		serveLanding(c, cfg.PublicDir, rec)
	})

	return r
}

// serveLanding serves static files from publicDir with an index.html
// fallback for extensionless paths. Cleaning the rooted request path first
// keeps traversal sequences from escaping publicDir.
func serveLanding(c *gin.Context, publicDir string, rec handlers.Recorder) {
	reqPath := path.Clean("/" + c.Request.URL.Path)

	full := filepath.Join(publicDir, filepath.FromSlash(reqPath))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		c.File(full)
		return
	}

	if path.Ext(reqPath) != "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	rec.Record(c.Request.Context(), "landing_view", map[string]any{"path": reqPath}, nil)
	c.File(filepath.Join(publicDir, "index.html"))
}
