package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a salon client. Dependents (children) reference
// their paying parent through ParentID until they are marked
// independent, either manually or once past the configured age.
type Client struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName   string         `gorm:"size:255;not null" json:"first_name"`
	LastName    string         `gorm:"size:255;not null" json:"last_name"`
	Email       *string        `gorm:"size:255;index" json:"email,omitempty"`
	Phone       *string        `gorm:"size:50" json:"phone,omitempty"`
	BirthDate   *time.Time     `gorm:"type:date" json:"birth_date,omitempty"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Independent bool           `gorm:"not null;default:true" json:"independent"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent     *Client  `gorm:"foreignKey:ParentID" json:"-"`
	Dependents []Client `gorm:"foreignKey:ParentID" json:"dependents,omitempty"`
}

// BeforeCreate generates a UUID before creating a new client
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Client model
func (Client) TableName() string {
	return "clients"
}

// FullName returns the display name for receipts and listings
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Age returns the client's age in full years at the given time, or -1
// when no birth date is recorded.
func (c *Client) Age(at time.Time) int {
	if c.BirthDate == nil {
		return -1
	}
	years := at.Year() - c.BirthDate.Year()
	if at.YearDay() < c.BirthDate.YearDay() {
		years--
	}
	return years
}
