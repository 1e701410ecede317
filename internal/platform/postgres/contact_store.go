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

// Externally visible column names accepted in criteria and ordering,
// mapped onto qualified SQL columns. Anything else is rejected before it
// reaches SQL.
var contactColumns = map[string]string{
	"organization_id": "c.organization_id",
	"first_name":      "c.first_name",
	"last_name":       "c.last_name",
	"email":           "c.email",
	"phone":           "c.phone",
	"created_at":      "c.created_at",
}

// ContactSearchColumns are the columns matched by the search parameter.
// The parameter describer documents the same set.
var ContactSearchColumns = []string{"first_name", "last_name", "email"}

var contactSearchSQL = []string{"c.first_name", "c.last_name", "c.email"}

// ContactAssociations are the relation names accepted by populate.
var ContactAssociations = []string{"organization"}

// ContactStore implements the store.ContactStore interface using a
// PostgreSQL database as the storage backend.
type ContactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewContactStore creates a new PostgreSQL implementation of the
// ContactStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewContactStore(db store.DBTX, log *slog.Logger) *ContactStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ContactStore{
		db:     db,
		logger: log.With(slog.String("component", "contact_store")),
	}
}

// Ensure ContactStore implements store.ContactStore interface
var _ store.ContactStore = (*ContactStore)(nil)

const contactBaseColumns = "c.id, c.organization_id, c.first_name, c.last_name, c.email, c.phone, c.created_at, c.updated_at"

const contactJoinedColumns = contactBaseColumns +
	", o.id, o.name, o.domain, o.created_at, o.updated_at"

// selectContacts builds the FROM clause, joining organizations only when
// the association was requested.
func selectContacts(populate bool) string {
	if populate {
		return "SELECT " + contactJoinedColumns +
			" FROM contacts c LEFT JOIN organizations o ON o.id = c.organization_id"
	}
	return "SELECT " + contactBaseColumns + " FROM contacts c"
}

// scanContact reads one row produced by selectContacts.
func scanContact(rows *sql.Rows, populated bool) (*domain.Contact, error) {
	var c domain.Contact
	var orgID uuid.NullUUID

	if populated {
		var (
			oID        uuid.NullUUID
			oName      sql.NullString
			oDomain    sql.NullString
			oCreatedAt sql.NullTime
			oUpdatedAt sql.NullTime
		)
		if err := rows.Scan(
			&c.ID, &orgID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.CreatedAt, &c.UpdatedAt,
			&oID, &oName, &oDomain, &oCreatedAt, &oUpdatedAt,
		); err != nil {
			return nil, err
		}
		if oID.Valid {
			c.Organization = &domain.Organization{
				ID:        oID.UUID,
				Name:      oName.String,
				Domain:    oDomain.String,
				CreatedAt: oCreatedAt.Time,
				UpdatedAt: oUpdatedAt.Time,
			}
		}
	} else {
		if err := rows.Scan(
			&c.ID, &orgID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
	}

	if orgID.Valid {
		c.OrganizationID = &orgID.UUID
	}
	return &c, nil
}

// List implements store.ContactStore.List.
func (s *ContactStore) List(ctx context.Context, q store.Query) ([]*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	q = q.Normalize()
	populated := q.HasPopulate("organization")

	where, args, err := filterClause(q, contactColumns, contactSearchSQL)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(q, contactColumns, "c.last_name ASC, c.first_name ASC")
	if err != nil {
		return nil, err
	}

	query := selectContacts(populated) + where + order + pageClause(q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list contacts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []*domain.Contact
	for rows.Next() {
		c, err := scanContact(rows, populated)
		if err != nil {
			return nil, MapError(err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return contacts, nil
}

// Find implements store.ContactStore.Find. It reads through the row set
// rather than stopping at the first row, so a broken uniqueness assumption
// surfaces as store.ErrNotUnique instead of silently returning an arbitrary
// match.
func (s *ContactStore) Find(ctx context.Context, id uuid.UUID, q store.Query) (*domain.Contact, error) {
	populated := q.HasPopulate("organization")

	query := selectContacts(populated) + " WHERE c.id = $1"
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var found *domain.Contact
	for rows.Next() {
		if found != nil {
			return nil, fmt.Errorf("%w: contact %s", store.ErrNotUnique, id)
		}
		if found, err = scanContact(rows, populated); err != nil {
			return nil, MapError(err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	if found == nil {
		return nil, store.ErrContactNotFound
	}

	return found, nil
}

// Count implements store.ContactStore.Count.
func (s *ContactStore) Count(ctx context.Context, q store.Query) (int64, error) {
	where, args, err := filterClause(q, contactColumns, contactSearchSQL)
	if err != nil {
		return 0, err
	}

	var n int64
	query := "SELECT COUNT(*) FROM contacts c" + where
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, MapError(err)
	}
	return n, nil
}

// IDs implements store.ContactStore.IDs.
func (s *ContactStore) IDs(ctx context.Context, q store.Query) ([]uuid.UUID, error) {
	q = q.Normalize()

	where, args, err := filterClause(q, contactColumns, contactSearchSQL)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(q, contactColumns, "c.last_name ASC, c.first_name ASC")
	if err != nil {
		return nil, err
	}

	query := "SELECT c.id FROM contacts c" + where + order + pageClause(q)
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

// Create implements store.ContactStore.Create.
func (s *ContactStore) Create(ctx context.Context, draft *domain.ContactDraft) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	contact := domain.NewContact(draft)

	query := `
		INSERT INTO contacts (id, organization_id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		contact.ID,
		contact.OrganizationID,
		contact.FirstName,
		contact.LastName,
		contact.Email,
		contact.Phone,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", contact.ID.String()))
		return nil, MapError(err)
	}

	log.Info("contact created",
		slog.String("contact_id", contact.ID.String()))
	return contact, nil
}

// Update implements store.ContactStore.Update. It replaces the stored
// fields with the draft's and returns the updated entity.
func (s *ContactStore) Update(ctx context.Context, id uuid.UUID, draft *domain.ContactDraft) (*domain.Contact, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE contacts
		SET organization_id = $2, first_name = $3, last_name = $4, email = $5, phone = $6, updated_at = $7
		WHERE id = $1
		RETURNING id, organization_id, first_name, last_name, email, phone, created_at, updated_at
	`
	var c domain.Contact
	var orgID uuid.NullUUID
	err := s.db.QueryRowContext(
		ctx,
		query,
		id,
		draft.OrganizationID,
		draft.FirstName,
		draft.LastName,
		draft.Email,
		draft.Phone,
		time.Now().UTC(),
	).Scan(
		&c.ID, &orgID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrContactNotFound
		}
		log.Error("failed to update contact",
			slog.String("error", err.Error()),
			slog.String("contact_id", id.String()))
		return nil, MapError(err)
	}
	if orgID.Valid {
		c.OrganizationID = &orgID.UUID
	}

	return &c, nil
}

// Delete implements store.ContactStore.Delete.
func (s *ContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = $1", id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrContactNotFound)
}

// Draft implements store.ContactStore.Draft, returning the DTO
// representation used to pre-populate partial updates.
func (s *ContactStore) Draft(ctx context.Context, id uuid.UUID) (*domain.ContactDraft, error) {
	contact, err := s.Find(ctx, id, store.Query{})
	if err != nil {
		return nil, err
	}
	return contact.Draft(), nil
}
