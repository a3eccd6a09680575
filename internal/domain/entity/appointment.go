package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Appointment represents a booked slot for one client and one service
type Appointment struct {
	ID         uuid.UUID               `gorm:"type:uuid;primary_key" json:"id"`
	ClientID   uuid.UUID               `gorm:"type:uuid;not null;index" json:"client_id"`
	ServiceID  uuid.UUID               `gorm:"type:uuid;not null;index" json:"service_id"`
	OperatorID *uuid.UUID              `gorm:"type:uuid;index" json:"operator_id,omitempty"`
	StartsAt   time.Time               `gorm:"not null;index" json:"starts_at"`
	Status     enum.AppointmentStatus  `gorm:"default:0" json:"status"`
	Notes      *string                 `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
	DeletedAt  gorm.DeletedAt          `gorm:"index" json:"-"`

	// Relationships
	Client   Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Service  Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Operator *User   `gorm:"foreignKey:OperatorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new appointment
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
