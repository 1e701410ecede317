// Package domain defines the core entities and their draft (DTO) shapes.
// Drafts are the validated representations exchanged between request bodies
// and stored entities; validation rules live on the draft as struct tags.
package domain
