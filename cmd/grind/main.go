package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/avashisht/grind/internal/api"
	"github.com/avashisht/grind/internal/challenge"
	"github.com/avashisht/grind/internal/model"
	"github.com/avashisht/grind/internal/reminder"
	"github.com/avashisht/grind/internal/storage"
	"github.com/avashisht/grind/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "grind failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.DefaultRuntimeConfig()
	configPath := os.Getenv("GRIND_CONFIG")
	if configPath == "" {
		configPath = "grind.yaml"
	}
	cfg, err := update.LoadConfigFile(configPath, cfg)
	if err != nil {
		return err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	logger := log.New()
	logger.SetFormatter(&log.JSONFormatter{})
	if logFile, ferr := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
		logger.SetOutput(logFile)
		defer logFile.Close()
	} else {
		logger.SetOutput(os.Stderr)
	}

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		UserID:  cfg.UserID,
		Timeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	}, logger)
	if err != nil {
		return err
	}

	cache, err := storage.OpenSQLite(cfg.CachePath)
	if err != nil {
		// The cache is an accelerator, not a requirement. Run without it.
		logger.WithError(err).Warn("cache unavailable, running without offline state")
		cache = nil
	} else {
		defer cache.Close()
	}

	store := challenge.NewStore()
	consent := reminder.NewConsentSource(cfg.DesktopNotifications)
	scheduler := reminder.NewScheduler(consent, cfg.ReminderHours)

	if cache != nil {
		seedFromCache(store, scheduler, cache, logger)
	}

	engine := reminder.NewEngine(scheduler, func() (model.DailyLog, bool) {
		snap := store.Snapshot()
		return snap.Today, snap.HasToday
	}, time.Duration(cfg.ReminderIntervalSec)*time.Second, 8)

	deps := update.Deps{
		Backend:   client,
		Store:     store,
		Consent:   consent,
		Reminders: engine,
		Logger:    logger,
		Config:    cfg,
	}
	if cache != nil {
		deps.Cache = cache
	}
	if cfg.DesktopNotifications {
		deps.Notifier = reminder.ExecDesktopNotifier{}
	}

	m := update.NewModel(deps)
	if cache != nil && m.Store().Snapshot().HasToday {
		m.FromCache = true
	}

	engine.Start()
	defer engine.Stop()

	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

// seedFromCache pre-fills the confirmed store and the reminder dedupe slot so
// the first frame shows yesterday's fetch instead of a blank screen.
func seedFromCache(store *challenge.Store, scheduler *reminder.Scheduler, cache storage.Repository, logger *log.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	remote := challenge.RemoteState{}
	today := time.Now().Format(model.DateLayout)
	if day, err := cache.GetDay(ctx, today); err == nil {
		remote.Today = &day
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.WithError(err).Warn("cache day read failed")
	}
	if summary, _, err := cache.GetSummary(ctx); err == nil {
		remote.Progress = &summary
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.WithError(err).Warn("cache summary read failed")
	}
	if remote.Today != nil || remote.Progress != nil {
		store.Replace(remote, time.Now().UTC())
	}

	if slot, err := cache.GetReminderSlot(ctx); err == nil && !slot.IsZero() {
		scheduler.RestoreSlot(slot)
	} else if err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.WithError(err).Warn("reminder slot read failed")
	}
}
