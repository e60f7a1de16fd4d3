package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"prompt-studio/internal/config"
	"prompt-studio/internal/httpclient"
	"prompt-studio/internal/preview"
	"prompt-studio/internal/providers"
	"prompt-studio/internal/web"
)

//go:embed static/*
var staticFS embed.FS

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	var svc *preview.Service
	if err := cfg.ValidatePreview(); err != nil {
		logger.Warn("image preview disabled", "reason", err)
	} else {
		httpClient := httpclient.New(httpclient.Options{
			PreferIPv4: cfg.PreferIPv4,
			Timeout:    cfg.HTTPTimeout,
		})
		gen, err := providers.NewGenerator(cfg, httpClient, logger)
		if err != nil {
			panic(err)
		}
		svc = preview.NewService(preview.Options{
			Generator:     gen,
			RatePerMinute: cfg.PreviewRatePerMinute,
			MaxConcurrent: cfg.MaxConcurrent,
			TicketTTL:     cfg.PreviewTicketTTL,
			Logger:        logger,
		})
	}

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	app := web.New(web.Options{
		Preview:        svc,
		Static:         staticSub,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("web started", "addr", cfg.WebAddr, "provider", cfg.ImageProvider, "preview", svc.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
	logger.Info("web stopped")
}
