package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// ClientHistory is a denormalized projection of the ledger, one row per
// client per transaction, so the client detail screen never joins the
// ledger. The ledger stays the source of truth: history rows can be
// regenerated from it at any time via the rebuild operation.
type ClientHistory struct {
	ID            uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	ClientID      uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_history_client_tx" json:"client_id"`
	TransactionID uuid.UUID            `gorm:"type:uuid;not null;index;uniqueIndex:idx_history_client_tx" json:"transaction_id"`
	Number        int64                `gorm:"not null" json:"number"`
	Kind          enum.TransactionKind `gorm:"size:20;not null" json:"kind"`
	Amount        int64                `gorm:"not null" json:"-"` // Signed cents, negative for refunds
	PaymentMethod enum.PaymentMethod   `gorm:"size:20;not null" json:"payment_method"`
	Role          enum.ClientRole      `gorm:"size:20;not null" json:"role"`
	ServedAt      time.Time            `gorm:"not null;index" json:"served_at"`
	CreatedAt     time.Time            `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (h ClientHistory) MarshalJSON() ([]byte, error) {
	type Alias ClientHistory
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(h),
		Amount: float64(h.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new history entry
func (h *ClientHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ClientHistory model
func (ClientHistory) TableName() string {
	return "client_histories"
}
