package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/auth"
	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/scheduler"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskboard failed: %v\n", err)
		os.Exit(1)
	}
}

const memoryDBPath = ":memory:"

func run() error {
	configPath := flag.String("config", config.ResolveConfigPath(), "path to the TOML config file")
	flag.Parse()

	cfg, err := config.LoadOrCreate(*configPath)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)

	logger, closer, err := logging.Setup(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel, Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	kv, closeKV, err := openKV(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer closeKV()

	tasks := store.New(kv, store.WithLogger(logger))
	tasks.Load(ctx)
	logger.WithField("db", cfg.DBPath).WithField("tasks", len(tasks.Tasks())).Info("taskboard starting")

	var engine *scheduler.Engine
	if cfg.Alerts {
		engine = scheduler.NewEngine(cfg.AlertBuffer)
		engine.Start()
		defer engine.Stop()
	}

	program := tea.NewProgram(update.NewModel(update.Deps{
		Store:     tasks,
		Auth:      auth.NewService(kv, tasks, logger),
		Scheduler: engine,
		Log:       logger,
		Config:    cfg,
	}), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	if engine != nil && engine.Dropped() > 0 {
		logger.WithField("dropped", engine.Dropped()).Warn("alerts dropped while the UI was busy")
	}
	return nil
}

// openKV opens the sqlite file at path, or an in-memory store when path is
// ":memory:".
func openKV(ctx context.Context, path string) (storage.KV, func() error, error) {
	if path == memoryDBPath {
		return storage.NewMemoryKV(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	kv, err := storage.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return kv, kv.Close, nil
}
