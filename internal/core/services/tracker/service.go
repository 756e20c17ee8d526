package tracker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"ra-challenge-bot/internal/config"
	"ra-challenge-bot/internal/core/ports"
	"ra-challenge-bot/internal/core/services/awards"

	"github.com/go-co-op/gocron/v2"
)

type Dependencies struct {
	Config   *config.Config
	Storage  ports.Repository
	Fetcher  ports.ProgressFetcher
	Notifier ports.NotificationService
}

type Service struct {
	config   *config.Config
	storage  ports.Repository
	fetcher  ports.ProgressFetcher
	notifier ports.NotificationService
	ledger   *awards.AnnouncementLedger

	running   atomic.Bool
	scheduler gocron.Scheduler
}

func NewService(deps Dependencies) *Service {
	return &Service{
		config:   deps.Config,
		storage:  deps.Storage,
		fetcher:  deps.Fetcher,
		notifier: deps.Notifier,
		ledger:   awards.NewAnnouncementLedger(deps.Storage, deps.Config.HistoryCap),
	}
}

// Start runs the poll loop until ctx is cancelled. The first tick fires
// immediately, then every PollInterval.
func (s *Service) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}

	s.scheduler = scheduler

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.config.PollInterval),
		gocron.NewTask(func() { s.Tick(ctx) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	scheduler.Start()
	slog.Info("Tracker service started", "interval", s.config.PollInterval)

	<-ctx.Done()
	return scheduler.Shutdown()
}
