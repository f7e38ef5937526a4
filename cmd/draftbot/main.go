package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/djones2085/ffp/internal/api/fantasy"
	"github.com/djones2085/ffp/internal/api/sleeper"
	"github.com/djones2085/ffp/internal/bot"
	"github.com/djones2085/ffp/internal/config"
	"github.com/djones2085/ffp/internal/metrics"
	"github.com/djones2085/ffp/internal/repository/memory"
	"github.com/djones2085/ffp/internal/scheduler"
	"github.com/djones2085/ffp/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	settings, err := service.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}

	sleeperClient := sleeper.NewClient(cfg.Sleeper)
	sleeperAPI := sleeper.NewAPI(sleeperClient)
	fantasyAPI := fantasy.NewAPI(sleeperAPI)

	m := metrics.NewMetrics("ffp")
	repo := memory.NewRepository()
	draftService := service.NewDraftService(fantasyAPI, repo, settings, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := draftService.Refresh(ctx); err != nil {
		slog.Error("Initial player refresh failed", "error", err)
	}

	var sendMessage func(string) error
	if cfg.TelegramBot.Token != "" {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, draftService)
		if err != nil {
			return err
		}
		sendMessage = telegramBot.SendMessage

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("TELEGRAM_TOKEN not set, running without bot")
	}

	sched, err := scheduler.NewScheduler(cfg.Scheduler, draftService, sendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}

	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
