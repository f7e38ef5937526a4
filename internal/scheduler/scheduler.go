package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/djones2085/ffp/internal/config"
	"github.com/go-co-op/gocron/v2"
)

const jobTimeout = 2 * time.Minute

// Jobs is the work the scheduler runs on its cron lines.
type Jobs interface {
	Refresh(ctx context.Context) (int, error)
	GetDraftBoardReport(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Scheduler
	jobs        Jobs
	sendMessage func(string) error
}

func NewScheduler(cfg config.Scheduler, jobs Jobs, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Failed to load location, using UTC", "timezone", cfg.Timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		jobs:        jobs,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.cfg.RefreshCron != "" {
		_, err := s.s.NewJob(
			gocron.CronJob(s.cfg.RefreshCron, false),
			gocron.NewTask(s.refreshPlayers),
			gocron.WithName("refresh-players"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create refresh job: %w", err)
		}
	}

	// The board post needs somewhere to go.
	if s.cfg.BoardCron != "" && s.sendMessage != nil {
		_, err := s.s.NewJob(
			gocron.CronJob(s.cfg.BoardCron, false),
			gocron.NewTask(s.sendDraftBoard),
			gocron.WithName("draft-board"),
		)
		if err != nil {
			return fmt.Errorf("failed to create draft board job: %w", err)
		}
	}

	s.s.Start()
	slog.Info("Scheduler started", "jobs", len(s.s.Jobs()))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshPlayers() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.jobs.Refresh(ctx)
	if err != nil {
		slog.Error("Failed to refresh players", "error", err)
		return
	}
	slog.Info("Scheduled refresh complete", "players", n)
}

func (s *Scheduler) sendDraftBoard() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.jobs.GetDraftBoardReport(ctx)
	if err != nil {
		slog.Error("Failed to build draft board", "error", err)
		return
	}
	if err := s.sendMessage(report); err != nil {
		slog.Error("Failed to send draft board", "error", err)
	}
}
