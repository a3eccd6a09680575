package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// GiftCard represents a prepaid card sold at the register. Its purchase
// is an ordinary ledger sale; redemption flips the status and is
// recorded in the audit log.
type GiftCard struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Code          string              `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Amount        int64               `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Status        enum.GiftCardStatus `gorm:"size:20;not null;default:'issued';index" json:"status"`
	PurchaserName string              `gorm:"size:255" json:"purchaser_name"`
	RecipientName string              `gorm:"size:255" json:"recipient_name"`
	TransactionID *uuid.UUID          `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
	RedeemedAt    *time.Time          `json:"redeemed_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (g GiftCard) MarshalJSON() ([]byte, error) {
	type Alias GiftCard
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(g),
		Amount: float64(g.Amount) / 100,
	})
}

// IsRedeemable reports whether the card can still be redeemed at the given time
func (g *GiftCard) IsRedeemable(now time.Time) bool {
	if g.Status != enum.GiftCardStatusIssued {
		return false
	}
	if g.ExpiresAt != nil && now.After(*g.ExpiresAt) {
		return false
	}
	return true
}

// BeforeCreate generates a UUID before creating a new gift card
func (g *GiftCard) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the GiftCard model
func (GiftCard) TableName() string {
	return "gift_cards"
}
