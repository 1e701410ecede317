package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a person attached to at most one organization.
type Contact struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Organization is populated only when the association was requested
	// via the populate query parameter.
	Organization *Organization `json:"organization,omitempty"`
}

// ContactDraft is the DTO bound from request bodies for contact writes.
// Validation rules are expressed as validator tags consumed by the form
// processor.
type ContactDraft struct {
	OrganizationID *uuid.UUID `json:"organization_id" validate:"omitempty"`
	FirstName      string     `json:"first_name"     validate:"required,max=100"`
	LastName       string     `json:"last_name"      validate:"required,max=100"`
	Email          string     `json:"email"          validate:"required,email"`
	Phone          string     `json:"phone"          validate:"omitempty,max=32"`
}

// NewContact builds a Contact from a draft, generating its identity and
// timestamps. The draft is assumed to be validated already.
func NewContact(draft *ContactDraft) *Contact {
	now := time.Now().UTC()
	return &Contact{
		ID:             uuid.New(),
		OrganizationID: draft.OrganizationID,
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
		Email:          draft.Email,
		Phone:          draft.Phone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Draft returns the draft representation of the contact, used to
// pre-populate partial updates so unset fields keep their stored values.
func (c *Contact) Draft() *ContactDraft {
	return &ContactDraft{
		OrganizationID: c.OrganizationID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
	}
}

// Apply copies the draft's fields onto the contact and bumps the update
// timestamp.
func (c *Contact) Apply(draft *ContactDraft) {
	c.OrganizationID = draft.OrganizationID
	c.FirstName = draft.FirstName
	c.LastName = draft.LastName
	c.Email = draft.Email
	c.Phone = draft.Phone
	c.UpdatedAt = time.Now().UTC()
}
