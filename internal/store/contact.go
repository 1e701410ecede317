package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbranch/crud-api/internal/domain"
)

// ContactStore defines the persistence operations for contacts.
// Implementations must return ErrContactNotFound (or an error wrapping
// ErrNotFound) when the requested contact does not exist.
type ContactStore interface {
	// List retrieves contacts matching the query options.
	List(ctx context.Context, q Query) ([]*domain.Contact, error)

	// Find retrieves a single contact by ID. Only the query's Populate
	// option applies.
	Find(ctx context.Context, id uuid.UUID, q Query) (*domain.Contact, error)

	// Count returns the number of contacts matching the query criteria.
	Count(ctx context.Context, q Query) (int64, error)

	// IDs returns the identifiers of contacts matching the query options.
	IDs(ctx context.Context, q Query) ([]uuid.UUID, error)

	// Create persists a new contact built from the draft.
	Create(ctx context.Context, draft *domain.ContactDraft) (*domain.Contact, error)

	// Update replaces the stored contact's fields with the draft's.
	Update(ctx context.Context, id uuid.UUID, draft *domain.ContactDraft) (*domain.Contact, error)

	// Delete removes a contact by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// Draft returns the draft (DTO) representation of an existing contact,
	// used to pre-populate partial updates.
	Draft(ctx context.Context, id uuid.UUID) (*domain.ContactDraft, error)
}
