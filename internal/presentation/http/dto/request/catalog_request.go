package request

import "github.com/google/uuid"

// CreateServiceRequest represents a salon service creation request
type CreateServiceRequest struct {
	Name            string     `json:"name" binding:"required,min=1,max=255"`
	Price           float64    `json:"price" binding:"required,gt=0"`
	DurationMinutes int        `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	CategoryID      *uuid.UUID `json:"category_id"`
}

// UpdateServiceRequest represents a salon service update request
type UpdateServiceRequest struct {
	Name            *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Price           *float64   `json:"price" binding:"omitempty,gt=0"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	CategoryID      *uuid.UUID `json:"category_id"`
	Active          *bool      `json:"active"`
}

// CreateProductRequest represents a retail product creation request
type CreateProductRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=255"`
	Price      float64    `json:"price" binding:"required,gt=0"`
	Stock      int        `json:"stock" binding:"min=0"`
	CategoryID *uuid.UUID `json:"category_id"`
}

// UpdateProductRequest represents a retail product update request
type UpdateProductRequest struct {
	Name       *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Price      *float64   `json:"price" binding:"omitempty,gt=0"`
	Stock      *int       `json:"stock" binding:"omitempty,min=0"`
	CategoryID *uuid.UUID `json:"category_id"`
	Active     *bool      `json:"active"`
}

// AdjustStockRequest changes a product's stock by a signed delta
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CatalogFilterRequest represents catalog listing parameters
type CatalogFilterRequest struct {
	Search     string `form:"search"`
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
