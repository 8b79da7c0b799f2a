// Command server runs the web application: HTML pages, the auth flow, and
// the JSON endpoints that feed translation requests into the shared database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/voxlate/go-translate-backend/internal/config"
	httpapi "github.com/voxlate/go-translate-backend/internal/http"
	"github.com/voxlate/go-translate-backend/internal/observability"
	"github.com/voxlate/go-translate-backend/internal/repo"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := newLogger(cfg)
	// Request middleware logs through the global logger.
	zlog.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("database open failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()

	templatesLoaded := false
	if matches, _ := filepath.Glob(cfg.TemplatesGlob); len(matches) > 0 {
		engine.LoadHTMLGlob(cfg.TemplatesGlob)
		templatesLoaded = true
	} else {
		log.Warn().Str("glob", cfg.TemplatesGlob).Msg("no HTML templates found, pages degrade to plain responses")
	}
	if st, err := os.Stat("web/static"); err == nil && st.IsDir() {
		engine.Static("/static", "web/static")
	}

	httpapi.RegisterRoutes(engine, db, cfg, templatesLoaded)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newLogger builds the process logger from LOG_LEVEL / LOG_PRETTY.
func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.LogPretty {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Str("service", "server").Logger()
}
