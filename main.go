package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/cohen2you/transcripts-project/api"
	"github.com/cohen2you/transcripts-project/config"
	"github.com/cohen2you/transcripts-project/db"
	"github.com/cohen2you/transcripts-project/log"
	"github.com/cohen2you/transcripts-project/transcript"
	"github.com/cohen2you/transcripts-project/workers/polish"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Get()
	log.SetLevel(cfg.LogLevel)

	// Initialize database
	_ = db.GetDB()

	// Optional prompt overrides, hot-reloaded on edit
	if cfg.PromptsDir != "" {
		if err := transcript.LoadPromptOverrides(cfg.PromptsDir); err != nil {
			log.Fatal().Err(err).Str("dir", cfg.PromptsDir).Msg("failed to load prompt overrides")
		}
		stopWatch, err := transcript.WatchPromptOverrides(cfg.PromptsDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.PromptsDir).Msg("failed to watch prompts directory")
		}
		defer stopWatch()
	}

	// Set Gin to release mode to disable its default debug logging
	// We use our own zerolog-based request logger instead
	gin.SetMode(gin.ReleaseMode)

	// Create Gin router
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(log.GinLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// CORS for development
	if cfg.IsDevelopment() {
		r.Use(corsMiddleware())
	}

	// Security headers (production only)
	if !cfg.IsDevelopment() {
		r.Use(securityHeadersMiddleware())
	}

	r.SetTrustedProxies(nil)

	// Ignore .well-known requests (Chrome DevTools, etc.)
	r.GET("/.well-known/*path", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	// Background worker for queued cleanup jobs
	worker := polish.NewWorker(polish.Config{
		Workers:   cfg.PolishWorkers,
		QueueSize: cfg.PolishQueueSize,
	})

	// Setup API routes
	api.SetupRoutes(r, api.NewHandlers(worker))

	// Serve the static client shell (built frontend)
	// Assets with content hash are immutable, cache for 1 year
	r.GET("/assets/*filepath", serveImmutableAssets("frontend/dist/assets"))
	r.GET("/favicon.ico", serveStaticFile("frontend/dist/favicon.ico", "image/x-icon"))

	// SPA fallback - serve index.html for non-API routes, uncached
	r.NoRoute(func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.File("frontend/dist/index.html")
	})

	log.Info().Msg("starting background workers")
	worker.Start()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:     addr,
		Handler:  r,
		ErrorLog: log.StdLogger(zerolog.ErrorLevel),
	}

	// Start server
	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.Env).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Stop the worker first (it holds db connections)
	worker.Stop()

	// Shutdown server with timeout to close remaining HTTP connections
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	// Close database
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("database close error")
	}

	log.Info().Msg("server stopped")
}

// corsMiddleware creates a CORS middleware for Gin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:5173": true,
			"http://localhost:8080": true,
		}

		if allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// securityHeadersMiddleware adds security headers to all responses
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "SAMEORIGIN")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		c.Next()
	}
}

// serveImmutableAssets serves assets with content hash (can be cached indefinitely)
func serveImmutableAssets(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filePath := c.Param("filepath")
		fullPath := filepath.Join(basePath, filePath)

		// Security: prevent path traversal
		if strings.Contains(filePath, "..") {
			c.Status(http.StatusForbidden)
			return
		}

		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			c.Status(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.File(fullPath)
	}
}

// serveStaticFile serves a specific static file with caching
func serveStaticFile(filePath string, contentType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			c.Status(http.StatusNotFound)
			return
		}

		c.Header("Cache-Control", "public, max-age=86400, must-revalidate")
		if contentType != "" {
			c.Header("Content-Type", contentType)
		}
		c.File(filePath)
	}
}
