package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/qurehealth/qure/internal/auth/http"
	"github.com/qurehealth/qure/internal/auth/service"
	"github.com/qurehealth/qure/internal/auth/store"
	"github.com/qurehealth/qure/internal/auth/store/drivers/postgres"
	"github.com/qurehealth/qure/internal/auth/store/drivers/sqlite"
	"github.com/qurehealth/qure/pkg/cryptox"
	"github.com/qurehealth/qure/pkg/httpx"
	"github.com/qurehealth/qure/pkg/jwtx"
	"github.com/qurehealth/qure/pkg/mailx"
	"github.com/qurehealth/qure/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier
	mailer   mailx.Mailer
	metrics  *httpx.Metrics

	// Services
	registrationService  *service.RegistrationService
	sessionService       *service.SessionService
	accessService        *service.AccessService
	passwordResetService *service.PasswordResetService
	housekeepingService  *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "qure-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initMailer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initSessions()
	app.metrics = httpx.NewMetrics("qure")
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Stop the housekeeping service
	app.housekeepingService.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DatabaseDriver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initMailer builds the outbound transport, paced by MAIL_RATE_PER_MINUTE
func (app *Application) initMailer() error {
	from, err := mail.ParseAddress(app.cfg.MailFrom)
	if err != nil {
		return fmt.Errorf("invalid MAIL_FROM: %w", err)
	}

	var transport mailx.Mailer
	switch app.cfg.MailTransport {
	case "smtp":
		transport, err = mailx.NewSMTPMailer(mailx.SMTPConfig{
			Host:        app.cfg.SMTPHost,
			Port:        app.cfg.SMTPPort,
			Username:    app.cfg.SMTPUsername,
			Password:    app.cfg.SMTPPassword,
			FromName:    from.Name,
			FromAddress: from.Address,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp mailer: %w", err)
		}
		app.logger.Info("smtp mail transport configured", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
	default:
		transport = &mailx.LogMailer{From: from.String(), Out: os.Stderr, Logger: app.logger}
		app.logger.Warn("mail transport is log: emails are written to stderr, not sent")
	}

	app.mailer = mailx.NewThrottled(transport, app.cfg.MailRatePerMinute)
	return nil
}

// initSessions builds the HS256 signer and verifier. A missing secret is
// reported here and surfaces as a configuration error on use.
func (app *Application) initSessions() {
	if app.cfg.JWTSecret == "" {
		app.logger.Error("JWT_SECRET is not configured: login and authenticated routes will fail")
	}
	app.signer = jwtx.NewSignerHS256(app.cfg.JWTSecret)
	app.verifier = jwtx.NewVerifierHS256(app.cfg.JWTSecret, app.cfg.Issuer, 0)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	metrics := service.NewMetrics(app.metrics.Registry)

	notifier := &service.Notifier{
		Mailer:       app.mailer,
		ResetBaseURL: app.cfg.ResetBaseURL,
		Metrics:      metrics,
	}

	app.registrationService = &service.RegistrationService{
		Store:    app.db,
		Notifier: notifier,
		Metrics:  metrics,
	}
	app.sessionService = &service.SessionService{
		Store:    app.db,
		Signer:   app.signer,
		Verifier: app.verifier,
		Issuer:   app.cfg.Issuer,
		Metrics:  metrics,
	}
	app.accessService = &service.AccessService{
		Store:   app.db,
		Metrics: metrics,
	}
	app.passwordResetService = &service.PasswordResetService{
		Store:    app.db,
		Notifier: notifier,
		TokenTTL: app.cfg.ResetTokenTTL,
		Metrics:  metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
		app.cfg.ExposeErrors(),
	)

	// Wire services to router
	router.RegistrationService = app.registrationService
	router.SessionService = app.sessionService
	router.AccessService = app.accessService
	router.PasswordResetService = app.passwordResetService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
