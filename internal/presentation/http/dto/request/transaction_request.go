package request

import "github.com/google/uuid"

// CartItemRequest is one line of the cart. Price is a decimal amount.
type CartItemRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Type     string  `json:"type" binding:"omitempty,oneof=service product giftcard"`
}

// CreateTransactionRequest represents a sale submission
type CreateTransactionRequest struct {
	Items               []CartItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod       string            `json:"payment_method" binding:"required"`
	PrimaryClientID     *uuid.UUID        `json:"primary_client_id"`
	AdditionalClientIDs []uuid.UUID       `json:"additional_client_ids"`
	Notes               *string           `json:"notes"`
}

// RefundTransactionRequest represents a refund submission
type RefundTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateTransactionNotesRequest updates the notes of a ledger row
type UpdateTransactionNotesRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// AttachPhotoRequest attaches a result photo to a ledger row
type AttachPhotoRequest struct {
	PhotoURL string `json:"photo_url" binding:"required,url"`
}

// TransactionFilterRequest represents ledger filter parameters
type TransactionFilterRequest struct {
	Kind          string `form:"kind"`
	PaymentMethod string `form:"payment_method"`
	ClientID      string `form:"client_id"`
	StartDate     string `form:"start_date"` // YYYY-MM-DD
	EndDate       string `form:"end_date"`   // YYYY-MM-DD, inclusive
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Limit         int    `form:"limit"` // For cursor-based pagination
}
