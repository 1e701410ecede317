package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mbranch/crud-api/internal/domain"
	"github.com/mbranch/crud-api/internal/platform/logger"
	"github.com/mbranch/crud-api/internal/store"
)

var organizationColumns = map[string]string{
	"name":       "o.name",
	"domain":     "o.domain",
	"created_at": "o.created_at",
}

// OrganizationSearchColumns are the columns matched by the search parameter.
var OrganizationSearchColumns = []string{"name", "domain"}

var organizationSearchSQL = []string{"o.name", "o.domain"}

// OrganizationStore implements the store.OrganizationStore interface using
// a PostgreSQL database as the storage backend.
type OrganizationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewOrganizationStore creates a new PostgreSQL implementation of the
// OrganizationStore interface.
func NewOrganizationStore(db store.DBTX, log *slog.Logger) *OrganizationStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &OrganizationStore{
		db:     db,
		logger: log.With(slog.String("component", "organization_store")),
	}
}

// Ensure OrganizationStore implements store.OrganizationStore interface
var _ store.OrganizationStore = (*OrganizationStore)(nil)

const organizationSelect = "SELECT o.id, o.name, o.domain, o.created_at, o.updated_at FROM organizations o"

func scanOrganization(rows *sql.Rows) (*domain.Organization, error) {
	var o domain.Organization
	var dom sql.NullString
	if err := rows.Scan(&o.ID, &o.Name, &dom, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Domain = dom.String
	return &o, nil
}

// List implements store.OrganizationStore.List.
func (s *OrganizationStore) List(ctx context.Context, q store.Query) ([]*domain.Organization, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	q = q.Normalize()

	where, args, err := filterClause(q, organizationColumns, organizationSearchSQL)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(q, organizationColumns, "o.name ASC")
	if err != nil {
		return nil, err
	}

	query := organizationSelect + where + order + pageClause(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list organizations", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var orgs []*domain.Organization
	for rows.Next() {
		o, err := scanOrganization(rows)
		if err != nil {
			return nil, MapError(err)
		}
		orgs = append(orgs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return orgs, nil
}

// Find implements store.OrganizationStore.Find. Like ContactStore.Find it
// surfaces store.ErrNotUnique when the singular lookup matches more than
// one row.
func (s *OrganizationStore) Find(ctx context.Context, id uuid.UUID, q store.Query) (*domain.Organization, error) {
	rows, err := s.db.QueryContext(ctx, organizationSelect+" WHERE o.id = $1", id)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var found *domain.Organization
	for rows.Next() {
		if found != nil {
			return nil, fmt.Errorf("%w: organization %s", store.ErrNotUnique, id)
		}
		if found, err = scanOrganization(rows); err != nil {
			return nil, MapError(err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	if found == nil {
		return nil, store.ErrOrganizationNotFound
	}

	return found, nil
}

// Count implements store.OrganizationStore.Count.
func (s *OrganizationStore) Count(ctx context.Context, q store.Query) (int64, error) {
	where, args, err := filterClause(q, organizationColumns, organizationSearchSQL)
	if err != nil {
		return 0, err
	}

	var n int64
	query := "SELECT COUNT(*) FROM organizations o" + where
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// IDs implements store.OrganizationStore.IDs.
func (s *OrganizationStore) IDs(ctx context.Context, q store.Query) ([]uuid.UUID, error) {
	q = q.Normalize()

	where, args, err := filterClause(q, organizationColumns, organizationSearchSQL)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(q, organizationColumns, "o.name ASC")
	if err != nil {
		return nil, err
	}

	query := "SELECT o.id FROM organizations o" + where + order + pageClause(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}

// Create implements store.OrganizationStore.Create.
func (s *OrganizationStore) Create(ctx context.Context, draft *domain.OrganizationDraft) (*domain.Organization, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	org := domain.NewOrganization(draft)

	query := `
		INSERT INTO organizations (id, name, domain, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		nullString(org.Domain),
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create organization",
			slog.String("error", err.Error()),
			slog.String("organization_id", org.ID.String()))
		return nil, MapError(err)
	}

	log.Info("organization created",
		slog.String("organization_id", org.ID.String()))
	return org, nil
}

// Update implements store.OrganizationStore.Update.
func (s *OrganizationStore) Update(ctx context.Context, id uuid.UUID, draft *domain.OrganizationDraft) (*domain.Organization, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE organizations
		SET name = $2, domain = $3, updated_at = $4
		WHERE id = $1
		RETURNING id, name, domain, created_at, updated_at
	`
	var o domain.Organization
	var dom sql.NullString
	err := s.db.QueryRowContext(
		ctx,
		query,
		id,
		draft.Name,
		nullString(draft.Domain),
		time.Now().UTC(),
	).Scan(&o.ID, &o.Name, &dom, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrOrganizationNotFound
		}
		log.Error("failed to update organization",
			slog.String("error", err.Error()),
			slog.String("organization_id", id.String()))
		return nil, MapError(err)
	}
	o.Domain = dom.String

	return &o, nil
}

// Delete implements store.OrganizationStore.Delete.
func (s *OrganizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM organizations WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrOrganizationNotFound)
}

// Draft implements store.OrganizationStore.Draft.
func (s *OrganizationStore) Draft(ctx context.Context, id uuid.UUID) (*domain.OrganizationDraft, error) {
	org, err := s.Find(ctx, id, store.Query{})
	if err != nil {
		return nil, err
	}
	return org.Draft(), nil
}

// nullString maps empty strings onto SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
