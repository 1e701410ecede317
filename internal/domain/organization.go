package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a company or group that contacts belong to.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Domain    string    `json:"domain,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrganizationDraft is the DTO bound from request bodies for organization
// writes.
type OrganizationDraft struct {
	Name   string `json:"name"   validate:"required,max=200"`
	Domain string `json:"domain" validate:"omitempty,hostname,max=253"`
}

// NewOrganization builds an Organization from a draft, generating its
// identity and timestamps. The draft is assumed to be validated already.
func NewOrganization(draft *OrganizationDraft) *Organization {
	now := time.Now().UTC()
	return &Organization{
		ID:        uuid.New(),
		Name:      draft.Name,
		Domain:    draft.Domain,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Draft returns the draft representation of the organization.
func (o *Organization) Draft() *OrganizationDraft {
	return &OrganizationDraft{
		Name:   o.Name,
		Domain: o.Domain,
	}
}

// Apply copies the draft's fields onto the organization and bumps the
// update timestamp.
func (o *Organization) Apply(draft *OrganizationDraft) {
	o.Name = draft.Name
	o.Domain = draft.Domain
	o.UpdatedAt = time.Now().UTC()
}
