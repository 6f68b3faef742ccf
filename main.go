// govdir/main.go
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

	"golang.org/x/crypto/bcrypt"

	"govdir/config"
	"govdir/database"
	"govdir/handlers"
	"govdir/models"
)

// Application bundles the service's dependencies and satisfies
// handlers.App.
type Application struct {
	db        *database.DatabaseService
	sessions  *models.SessionStore
	backups   models.BackupStore
	backupDir string
	logger    *slog.Logger
}

func (a *Application) DB() *database.DatabaseService  { return a.db }
func (a *Application) Sessions() *models.SessionStore { return a.sessions }
func (a *Application) Backups() models.BackupStore    { return a.backups }
func (a *Application) BackupDir() string              { return a.backupDir }
func (a *Application) Logger() *slog.Logger           { return a.logger }

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	settings, err := config.Load(os.Getenv("GOVDIR_CONFIG"))
	if err != nil {
		logger.Error("loading configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.InitDB(settings.DBPath, logger)
	if err != nil {
		logger.Error("initializing database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if settings.Admin.Email != "" && settings.Admin.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(settings.Admin.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("hashing admin password", "error", err)
			os.Exit(1)
		}
		admin, err := db.EnsureAdmin(settings.Admin.Email, settings.Admin.DisplayName, string(hash))
		if err != nil {
			logger.Error("seeding admin account", "error", err)
			os.Exit(1)
		}
		logger.Info("admin account ready", "email", admin.Email)
	} else {
		logger.Warn("no admin account configured; moderation endpoints will be unreachable")
	}

	ttl, err := time.ParseDuration(settings.SessionTTL)
	if err != nil {
		logger.Error("parsing session ttl", "error", err, "value", settings.SessionTTL)
		os.Exit(1)
	}

	app := &Application{
		db:        db,
		sessions:  models.NewSessionStore(ttl),
		backups:   newBackupStore(settings, logger),
		backupDir: settings.BackupDir,
		logger:    logger,
	}

	server := &http.Server{
		Addr:    ":" + settings.Port,
		Handler: handlers.SetupRouter(app),
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr, "version", config.AppVersion)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
