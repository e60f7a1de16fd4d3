package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"prompt-studio/internal/config"
	"prompt-studio/internal/handlers"
	"prompt-studio/internal/httpclient"
	"prompt-studio/internal/mediagroup"
	"prompt-studio/internal/preview"
	"prompt-studio/internal/providers"
	"prompt-studio/internal/studio"
	"prompt-studio/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.ValidateBot(); err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}
	if err := tg.SetCommands(handlers.Commands()); err != nil {
		logger.Warn("set commands failed", "err", err)
	}

	gen, err := providers.NewGenerator(cfg, httpClient, logger)
	if err != nil {
		logger.Error("image provider init failed", "err", err)
		os.Exit(1)
	}

	previews := preview.NewService(preview.Options{
		Generator:     gen,
		RatePerMinute: cfg.PreviewRatePerMinute,
		MaxConcurrent: cfg.MaxConcurrent,
		TicketTTL:     cfg.PreviewTicketTTL,
		Logger:        logger,
	})

	sessions := studio.NewStore()

	handler := handlers.New(handlers.Options{
		Telegram: tg,
		Preview:  previews,
		Sessions: sessions,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sem := make(chan struct{}, cfg.MaxConcurrent)
	onGroupFlush := func(group mediagroup.Group) {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return
		}

		go func() {
			defer func() { <-sem }()

			reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()

			handler.HandleMediaGroup(reqCtx, group)
		}()
	}

	aggregator := mediagroup.New(mediagroup.Options{
		Debounce: cfg.MediaGroupDebounce,
		OnFlush:  onGroupFlush,
	})
	defer aggregator.Stop()
	handler.SetMediaGroupAggregator(aggregator)

	if cfg.SessionIdleTTL > 0 {
		go pruneSessions(ctx, sessions, cfg.SessionIdleTTL, logger)
	}

	logger.Info("bot started", "username", tg.Username(), "provider", cfg.ImageProvider)

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}

			go func(update telegram.Update) {
				defer func() { <-sem }()

				reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "err", err)
				}
			}(update)
		}
	}
}

func pruneSessions(ctx context.Context, sessions *studio.Store, idle time.Duration, logger *slog.Logger) {
	interval := idle / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(idle); n > 0 {
				logger.Info("pruned idle sessions", "count", n, "remaining", sessions.Len())
			}
		}
	}
}
