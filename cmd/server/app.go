package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mbranch/crud-api/internal/api"
	"github.com/mbranch/crud-api/internal/config"
	"github.com/mbranch/crud-api/internal/domain"
	"github.com/mbranch/crud-api/internal/platform/postgres"
	"github.com/mbranch/crud-api/internal/service/auth"
	"github.com/mbranch/crud-api/internal/store"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	contactStore      store.ContactStore
	organizationStore store.OrganizationStore

	// Service interfaces
	jwtService  auth.JWTService
	keyVerifier auth.APIKeyVerifier

	// Request plumbing shared by every resource handler
	forms *api.FormProcessor

	// Resource handlers
	contacts      *api.ResourceHandler[*domain.Contact, *domain.ContactDraft]
	organizations *api.ResourceHandler[*domain.Organization, *domain.OrganizationDraft]
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.keyVerifier, err = auth.NewBcryptVerifier(cfg.Auth.APIKeyHash)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API key verifier: %w", err)
	}

	app.contactStore = postgres.NewContactStore(db, logger)
	app.organizationStore = postgres.NewOrganizationStore(db, logger)

	app.forms = api.NewFormProcessor(logger)

	app.contacts = api.NewResourceHandler(
		api.ResourceConfig[*domain.ContactDraft]{
			Name:          "contacts",
			NewDraft:      func() *domain.ContactDraft { return &domain.ContactDraft{} },
			SearchColumns: postgres.ContactSearchColumns,
			Associations:  postgres.ContactAssociations,
		},
		app.contactStore,
		app.forms,
		logger,
	)

	app.organizations = api.NewResourceHandler(
		api.ResourceConfig[*domain.OrganizationDraft]{
			Name:          "organizations",
			NewDraft:      func() *domain.OrganizationDraft { return &domain.OrganizationDraft{} },
			SearchColumns: postgres.OrganizationSearchColumns,
		},
		app.organizationStore,
		app.forms,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
