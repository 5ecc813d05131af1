package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/passman/internal/vault/cli"
	"github.com/aussiebroadwan/passman/internal/vault/domain"
	"github.com/aussiebroadwan/passman/internal/vault/service"
	"github.com/aussiebroadwan/passman/internal/vault/store"
	"github.com/aussiebroadwan/passman/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/passman/pkg/cryptox"
	"github.com/aussiebroadwan/passman/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application wires the vault services to their storage and logger.
type Application struct {
	cfg     Config
	logger  *slog.Logger
	logFile io.Closer

	db     store.Store
	hasher *cryptox.Hasher

	Accounts *service.AccountService
	Auth     *service.AuthService
	Vault    *service.VaultService
}

// New opens the vault database and builds the services. The schema is not
// touched until Bootstrap.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}
	if err := app.initLogger(); err != nil {
		return nil, err
	}

	pepper, err := cryptox.LoadOrGeneratePepper(cfg.PepperFile)
	if err != nil {
		app.closeLog()
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewHasher(cryptox.Algorithm(cfg.HashAlgorithm), pepper)
	app.hasher.BcryptCost = cfg.BcryptCost

	if err := app.initDatabase(); err != nil {
		app.closeLog()
		return nil, err
	}

	app.initServices()
	return app, nil
}

func (app *Application) initLogger() error {
	var out io.Writer = os.Stderr
	if app.cfg.LogFile != "" {
		f, err := os.OpenFile(app.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		app.logFile = f
		out = f
	}

	app.logger = slogx.New(slogx.Config{
		Service: "passman",
		Version: BuildVersion,
		Env:     app.cfg.Env,
		Level:   app.cfg.LogLevel,
		Format:  app.cfg.LogFormat,
		Output:  out,
	})
	return nil
}

// initDatabase opens the SQLite file with a busy timeout and WAL journal.
func (app *Application) initDatabase() error {
	dsn := app.cfg.DatabaseFile
	if dsn != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dsn)
	}

	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(context.Background()); err != nil {
		_ = db.Close()
		return fmt.Errorf("database unavailable: %w", err)
	}
	app.db = db
	return nil
}

func (app *Application) initServices() {
	// Validate already accepted the scope
	scope, _ := domain.ParseScope(app.cfg.VaultScope)

	app.Accounts = &service.AccountService{Store: app.db, Hasher: app.hasher}
	app.Auth = &service.AuthService{
		Store:   app.db,
		Hasher:  app.hasher,
		Limiter: service.NewLoginLimiter(app.cfg.LoginAttempts),
	}
	app.Vault = &service.VaultService{Store: app.db, Scope: scope}
}

// Bootstrap creates or upgrades the schema. Safe to run on every start.
func (app *Application) Bootstrap() error {
	if err := app.db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Debug("database migrations applied", "file", app.cfg.DatabaseFile)
	return nil
}

// Run bootstraps the schema and serves the interactive menu on in/out
// until the operator quits.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := app.Bootstrap(); err != nil {
		return err
	}

	ctx = slogx.WithContext(ctx, app.logger)
	app.logger.Info("passman starting", "version", BuildVersion, "scope", app.cfg.VaultScope)

	return cli.New(app.Accounts, app.Auth, app.Vault, in, out).Run(ctx)
}

// Close releases the database and the log file.
func (app *Application) Close() error {
	err := app.db.Close()
	if err != nil {
		app.logger.Error("error closing database", "error", err)
	}
	app.closeLog()
	return err
}

func (app *Application) closeLog() {
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}
