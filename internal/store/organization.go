package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/mbranch/crud-api/internal/domain"
)

// OrganizationStore defines the persistence operations for organizations.
type OrganizationStore interface {
	List(ctx context.Context, q Query) ([]*domain.Organization, error)
	Find(ctx context.Context, id uuid.UUID, q Query) (*domain.Organization, error)
	Count(ctx context.Context, q Query) (int64, error)
	IDs(ctx context.Context, q Query) ([]uuid.UUID, error)
	Create(ctx context.Context, draft *domain.OrganizationDraft) (*domain.Organization, error)
	Update(ctx context.Context, id uuid.UUID, draft *domain.OrganizationDraft) (*domain.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Draft(ctx context.Context, id uuid.UUID) (*domain.OrganizationDraft, error)
}
