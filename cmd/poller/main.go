// Command poller runs the background translation worker. It shares the
// database with the web server, claims pending translation requests, calls
// the configured translation provider, and writes the results back.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/voxlate/go-translate-backend/internal/config"
	"github.com/voxlate/go-translate-backend/internal/observability"
	"github.com/voxlate/go-translate-backend/internal/poller"
	"github.com/voxlate/go-translate-backend/internal/repo"
	"github.com/voxlate/go-translate-backend/internal/translate"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := newLogger(cfg)
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

	var tr translate.Translator
	if cfg.Provider.URL != "" {
		tr = translate.NewHTTPClient(cfg.Provider.URL, cfg.Provider.APIKey, cfg.Provider.Timeout)
		log.Info().Str("endpoint", cfg.Provider.URL).Msg("using remote translation provider")
	} else {
		tr = &translate.Static{}
		log.Info().Msg("no provider configured, using static translator")
	}

	p := poller.New(db, tr, log, cfg.Poller.Interval, cfg.Poller.ClaimLease, cfg.Provider.Timeout, cfg.Provider.Name)
	if err := p.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("poller exited")
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
	return log.Level(level).With().Timestamp().Str("service", "poller").Logger()
}
