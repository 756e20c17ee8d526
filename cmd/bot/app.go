package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ra-challenge-bot/internal/adapters/discord"
	"ra-challenge-bot/internal/adapters/discord/commands"
	"ra-challenge-bot/internal/adapters/retroachievements"
	"ra-challenge-bot/internal/adapters/retroachievements/api"
	"ra-challenge-bot/internal/adapters/storage/postgres"
	"ra-challenge-bot/internal/config"
	"ra-challenge-bot/internal/core/ports"
	"ra-challenge-bot/internal/core/services/tracker"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	config             *config.Config
	store              ports.Repository
	discord            *discordgo.Session
	fetcher            *retroachievements.Adapter
	trackerService     *tracker.Service
	router             *commands.Router
	metricsServer      *http.Server
	trackerCtx         context.Context
	trackerCancel      context.CancelFunc
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to storage", "error", err)
		return nil, err
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := retroachievements.NewAdapter(api.NewClient(cfg.RAAPIUsername, cfg.RAAPIKey), cfg)
	notifier := discord.NewAdapter(session, cfg)

	trackerService := tracker.NewService(tracker.Dependencies{
		Config:   cfg,
		Storage:  store,
		Fetcher:  fetcher,
		Notifier: notifier,
	})

	handler := &commands.BotHandler{Config: cfg, Service: trackerService}
	router := commands.NewRouter()
	router.Register("set-challenge", commands.WithAdmin(handler.SetChallenge))
	router.Register("end-challenge", commands.WithAdmin(handler.EndChallenge))
	router.Register("track-user", commands.WithAdmin(handler.TrackUser))
	router.Register("untrack-user", commands.WithAdmin(handler.UntrackUser))
	router.Register("challenge-status", handler.ChallengeStatus)
	router.Register("profile", handler.Profile)
	router.Register("leaderboard", handler.Leaderboard)

	session.AddHandler(commands.ReadyHandler)
	session.AddHandler(router.HandleFunc())

	return &App{
		config:         cfg,
		store:          store,
		discord:        session,
		fetcher:        fetcher,
		trackerService: trackerService,
		router:         router,
	}, nil
}

func (a *App) Run() error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	cmds := commands.GetApplicationCommands()
	commands.CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID, a.config.DiscordGuildID)
	a.registeredCommands = commands.RegisterCommands(a.discord, cmds, a.discord.State.User.ID, a.config.DiscordGuildID)

	a.startMetricsServer()

	a.trackerCtx, a.trackerCancel = context.WithCancel(context.Background())
	go func() {
		if err := a.trackerService.Start(a.trackerCtx); err != nil {
			slog.Error("Tracker service stopped", "error", err)
		}
	}()

	slog.Info("Challenge bot is running")
	return nil
}

func (a *App) startMetricsServer() {
	addr := a.config.MetricsAddr
	if addr == "" {
		addr = ":9091"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Metrics server listening", "addr", addr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server error", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	if a.trackerCancel != nil {
		a.trackerCancel()
	}

	if a.fetcher != nil {
		a.fetcher.Stop()
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			slog.Error("Failed to close discord session", "error", err)
		}
	}

	var err error
	if a.metricsServer != nil {
		err = a.metricsServer.Shutdown(ctx)
	}

	if a.store != nil {
		a.store.Close()
	}

	return err
}
