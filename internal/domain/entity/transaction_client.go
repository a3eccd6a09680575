package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionClient links a ledger row to a client who was part of the
// visit. At most one link per transaction carries IsPrimary=true (the
// payer); further links are family members included in the same bill.
// The invariant is enforced inside the same database transaction that
// writes the ledger row.
type TransactionClient struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tx_client" json:"transaction_id"`
	ClientID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tx_client" json:"client_id"`
	IsPrimary     bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Client      Client      `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// BeforeCreate generates a UUID before creating a new link
func (tc *TransactionClient) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionClient model
func (TransactionClient) TableName() string {
	return "transaction_clients"
}
