package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions recorded by the services
const (
	AuditActionRefund         = "refund"
	AuditActionCashClosure    = "cash_closure"
	AuditActionGiftCardRedeem = "giftcard_redeem"
	AuditActionHistoryRebuild = "history_rebuild"
)

// AuditLog is an append-only trail of sensitive register operations.
// Metadata carries the operation-specific details (amounts, reasons,
// original transaction numbers) as free-form JSON.
type AuditLog struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ActorID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action     string         `gorm:"size:50;not null;index" json:"action"`
	EntityType string         `gorm:"size:50;not null" json:"entity_type"`
	EntityID   *uuid.UUID     `gorm:"type:uuid;index" json:"entity_id,omitempty"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`

	// Relationships
	Actor User `gorm:"foreignKey:ActorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new audit entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
