package app

import (
	"context"
	"fmt"

	"github.com/baristalab/drinks-api/auth0"
	"github.com/baristalab/drinks-api/config"
	"github.com/baristalab/drinks-api/middleware"
	"github.com/baristalab/drinks-api/repositories"
	"github.com/baristalab/drinks-api/repositories/postgres"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Drinks    repositories.DrinkRepository
	TxManager repositories.TransactionManager

	// Auth
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps.initAuth(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL connection, schema, and repositories
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(cfg.Database, d.Logger)
	if err != nil {
		return err
	}

	if err := db.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.DB = db
	d.Drinks = postgres.NewDrinkRepository(db, d.Logger)
	d.TxManager = postgres.NewTransactionManager(db, d.Logger)

	return nil
}

// initAuth wires the JWKS resolver, token validator, and auth middleware
func (d *Dependencies) initAuth(cfg *config.Config) {
	resolver := auth0.NewJWKSResolver(auth0.ResolverConfig{
		Domain:      cfg.Auth0.Domain,
		CacheTTL:    cfg.Auth0.CacheTTL,
		HTTPTimeout: cfg.Auth0.HTTPTimeout,
	}, d.Logger)

	validator := auth0.NewValidator(auth0.Config{
		Domain:   cfg.Auth0.Domain,
		Audience: cfg.Auth0.Audience,
	}, resolver, d.Logger)

	d.AuthMiddleware = middleware.NewAuthMiddleware(validator, d.Logger)
	d.Logger.Info("token verification initialized",
		zap.String("domain", cfg.Auth0.Domain),
		zap.String("audience", cfg.Auth0.Audience))
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
