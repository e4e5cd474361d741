package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/graceguide/grace/internal/config"
	"github.com/graceguide/grace/internal/core"
	"github.com/graceguide/grace/internal/providers/api"
	"github.com/graceguide/grace/internal/service/command"
	"github.com/graceguide/grace/internal/service/engagement"
	"github.com/graceguide/grace/internal/service/history"
	"github.com/graceguide/grace/internal/service/session"
	"github.com/graceguide/grace/internal/service/share"
	"github.com/graceguide/grace/internal/service/state"
	"github.com/graceguide/grace/internal/storage/sqlite"
	"github.com/graceguide/grace/internal/transport/telegram"
	"github.com/graceguide/grace/pkg/log"
	"github.com/graceguide/grace/pkg/srv"
	"github.com/joho/godotenv"
)

// app is the wired client shared by every command.
type app struct {
	cfg     *config.AppConfig
	db      *sql.DB
	session *session.Controller
	router  *command.Router
}

func newApp(ctx context.Context) (*app, error) {
	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}

	// 1. Configuration
	cfg, err := config.ParseAppConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// 2. Storage
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	// 3. Answer service, with daily content cached per day
	client := api.NewDailyCache(api.NewClient(cfg))

	// 4. Services
	renderer, err := share.NewRenderer()
	if err != nil {
		db.Close()
		return nil, err
	}

	stateRepo := sqlite.NewStateRepo(db)
	controller := session.NewController(
		client,
		history.NewStore(sqlite.NewHistoryRepo(db), cfg),
		engagement.NewGate(stateRepo, client, cfg),
		share.NewSharer(renderer, cfg),
		state.NewPreferences(stateRepo),
	)

	return &app{
		cfg:     cfg,
		db:      db,
		session: controller,
		router:  command.New(command.NewCommands(controller)),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// services are the long-running transports for `grace start`.
func (a *app) services(ctx context.Context) ([]srv.Service, error) {
	services := []srv.Service{srv.NewCleanup(a.Close)}

	// Telegram Bot
	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.session, a.router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if len(services) == 1 {
		return nil, errors.New("no background transport enabled (set GRACE_ENABLE_TELEGRAM=true or run 'grace setup')")
	}
	return services, nil
}

// initStorage opens and migrates the database once; used by the setup wizard.
func initStorage(ctx context.Context) func(runtimePath string) error {
	return func(runtimePath string) error {
		db, err := sqlite.NewDB(ctx, filepath.Join(runtimePath, "grace.db"))
		if err != nil {
			return err
		}
		return db.Close()
	}
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

type themeReader interface {
	Theme(ctx context.Context) (core.Theme, error)
}

// currentTheme falls back to the light theme when the preference cannot be read.
func currentTheme(ctx context.Context, r themeReader) core.Theme {
	theme, err := r.Theme(ctx)
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("failed to read theme preference")
		return core.ThemeLight
	}
	return theme
}

// withApp runs fn with a wired app and a stderr logger.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	ctx, flushLog := setupLogger(ctx, os.Stderr)
	defer flushLog()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
