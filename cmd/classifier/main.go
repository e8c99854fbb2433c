package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/civic-issues/backend/internal/classifier"
	"github.com/civic-issues/backend/internal/config"
	httpapi "github.com/civic-issues/backend/internal/http"
	"github.com/civic-issues/backend/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "classifier").Logger()

	// A failed load leaves the server up; every prediction then reports not ready.
	clf := classifier.Load(cfg.Classifier, logger)
	defer func() {
		if err := clf.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to release model")
		}
	}()

	router := httpapi.ClassifierRouter(cfg, clf, metrics.New(), logger)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindHost, cfg.Classifier.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Bool("ready", clf.Ready()).Msg("classifier started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("classifier stopped")
}
