// Package server initializes and runs the notevault backend: it loads
// configuration, opens the database, applies migrations, and starts the HTTP
// API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkarpis/notevault/internal/logging"
	"github.com/mkarpis/notevault/internal/server/config"
	"github.com/mkarpis/notevault/internal/server/httpapi"
	"github.com/mkarpis/notevault/internal/server/mail"
	"github.com/mkarpis/notevault/internal/server/repositories/repomanager"
	"github.com/mkarpis/notevault/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	authSvc := services.NewAuthService(db, m, cfg)
	noteSvc := services.NewNoteService(db, m)

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer, err = mail.NewSMTPMailer(cfg)
		if err != nil {
			return nil, fmt.Errorf("mailer init error: %w", err)
		}
	} else {
		logger.Warn(context.Background(), "SMTP not configured, welcome emails disabled")
	}

	httpServer, err := httpapi.NewServer(cfg, logger, authSvc, noteSvc, mailer)
	if err != nil {
		return nil, fmt.Errorf("http server init error: %w", err)
	}

	return &App{config: cfg, logger: logger, db: db, httpServer: httpServer}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
