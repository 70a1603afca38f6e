package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rpggio/workspace-nexus/internal/config"
	"github.com/rpggio/workspace-nexus/internal/domain/user"
	"github.com/rpggio/workspace-nexus/internal/seed"
	"github.com/rpggio/workspace-nexus/internal/sqlite"
	"github.com/rpggio/workspace-nexus/internal/store"
)

// app holds what a command needs once configuration has been resolved.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *store.Store
	closers []func() error
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// resolveConfig loads configuration and applies flag overrides.
func (f *globalFlags) resolveConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.seedSource != "" {
		cfg.Seed.Source = f.seedSource
	}
	if f.seedPath != "" {
		cfg.Seed.Path = f.seedPath
	}
	if f.idScheme != "" {
		cfg.IDs.Scheme = f.idScheme
	}
	if f.user != "" {
		cfg.Session.DefaultUser = f.user
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openApp resolves configuration, sets up logging and opens the store.
// Logs go to stderr unless a log file is configured; stdout carries command
// output and the stdio transport.
func openApp(ctx context.Context, flags *globalFlags, stderr io.Writer) (*app, error) {
	cfg, err := flags.resolveConfig()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	logWriter := stderr
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		a.closers = append(a.closers, file.Close)
		logWriter = fileWriter
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	src, closeSrc, err := openSeedSource(cfg.Seed)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if closeSrc != nil {
		a.closers = append(a.closers, closeSrc)
	}

	var opts []store.Option
	if cfg.IDs.Scheme == config.SchemeUUID {
		opts = append(opts, store.WithIDGenerator(store.UUIDs{}))
	}
	a.store, err = store.Open(ctx, src, a.logger, opts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	if cfg.Session.DefaultUser != "" {
		u, err := findUser(a.store.Users(), cfg.Session.DefaultUser)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.store.SetCurrentUser(ctx, u)
	}

	a.logger.Debug("store opened",
		"seed_source", cfg.Seed.Source,
		"seed_path", cfg.Seed.Path,
		"id_scheme", cfg.IDs.Scheme)
	return a, nil
}

// openSeedSource returns the configured seed source and, for sources that
// hold a resource, a function that releases it.
func openSeedSource(cfg config.SeedConfig) (store.SeedSource, func() error, error) {
	switch cfg.Source {
	case config.SourceYAML:
		return seed.FileRepository{Path: cfg.Path}, nil, nil
	case config.SourceSQLite:
		db, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return sqlite.NewSeedRepository(db), db.Close, nil
	default:
		return seed.BuiltinSource{}, nil, nil
	}
}

// findUser looks a user up by id, then by email ignoring case.
func findUser(users []user.User, ref string) (*user.User, error) {
	ref = strings.TrimSpace(ref)
	for _, u := range users {
		if u.ID == ref {
			return &u, nil
		}
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, ref) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q not found", ref)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
