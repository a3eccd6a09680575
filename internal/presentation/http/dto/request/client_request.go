package request

import "github.com/google/uuid"

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	FirstName   string     `json:"first_name" binding:"required,min=1,max=255"`
	LastName    string     `json:"last_name" binding:"required,min=1,max=255"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Phone       *string    `json:"phone" binding:"omitempty,max=50"`
	BirthDate   string     `json:"birth_date" binding:"omitempty"` // YYYY-MM-DD
	ParentID    *uuid.UUID `json:"parent_id"`
	Independent *bool      `json:"independent"`
	Notes       *string    `json:"notes"`
}

// UpdateClientRequest represents a client update request
type UpdateClientRequest struct {
	FirstName   *string    `json:"first_name" binding:"omitempty,min=1,max=255"`
	LastName    *string    `json:"last_name" binding:"omitempty,min=1,max=255"`
	Email       *string    `json:"email" binding:"omitempty,email"`
	Phone       *string    `json:"phone" binding:"omitempty,max=50"`
	BirthDate   string     `json:"birth_date" binding:"omitempty"` // YYYY-MM-DD
	ParentID    *uuid.UUID `json:"parent_id"`
	ClearParent bool       `json:"clear_parent"`
	Independent *bool      `json:"independent"`
	Notes       *string    `json:"notes"`
}
