package entity

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction represents one row of the append-only sales ledger.
// Rows are never deleted; monetary corrections are expressed as refund
// rows pointing back at the original sale. The only fields that may
// change after creation are the photo URL and the free-text notes.
type Transaction struct {
	ID                  uuid.UUID              `gorm:"type:uuid;primary_key" json:"id"`
	Number              int64                  `gorm:"uniqueIndex;not null" json:"number"`
	Kind                enum.TransactionKind   `gorm:"size:20;not null;index" json:"kind"`
	Status              enum.TransactionStatus `gorm:"size:20;not null;default:'paid';index" json:"status"`
	PaymentMethod       enum.PaymentMethod     `gorm:"size:20;not null;index" json:"payment_method"`
	TotalAmount         int64                  `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	NetAmount           int64                  `gorm:"default:0" json:"-"`
	VATAmount           int64                  `gorm:"default:0" json:"-"`
	Items               TransactionItems       `gorm:"serializer:json" json:"items"`
	ParentTransactionID *uuid.UUID             `gorm:"type:uuid;index" json:"parent_transaction_id,omitempty"`
	RefundReason        *string                `gorm:"type:text" json:"refund_reason,omitempty"`
	PhotoURL            *string                `gorm:"size:500" json:"photo_url,omitempty"`
	Notes               *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedAt           time.Time              `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`

	// Relationships
	CreatedBy User                `gorm:"foreignKey:CreatedByID" json:"-"`
	Parent    *Transaction        `gorm:"foreignKey:ParentTransactionID" json:"-"`
	Links     []TransactionClient `gorm:"foreignKey:TransactionID" json:"links,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
		NetAmount   float64 `json:"net_amount"`
		VATAmount   float64 `json:"vat_amount"`
	}{
		Alias:       Alias(t),
		TotalAmount: float64(t.TotalAmount) / 100,
		NetAmount:   float64(t.NetAmount) / 100,
		VATAmount:   float64(t.VATAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// GetTotalDecimal returns the total as a decimal
func (t *Transaction) GetTotalDecimal() float64 {
	return float64(t.TotalAmount) / 100
}

// IsRefundable reports whether a refund row may be written against this
// transaction. Refunds of refunds are rejected here; the already-refunded
// check needs a ledger lookup and lives in the service.
func (t *Transaction) IsRefundable() bool {
	return t.Kind == enum.TransactionKindSale && t.Status == enum.TransactionStatusPaid
}

// TransactionItems is the cart snapshot stored on the ledger row. The
// snapshot is self-contained: deleting or repricing a catalog entry never
// changes what a past receipt says.
type TransactionItems []TransactionItem

// TransactionItem is a single cart line frozen at sale time.
type TransactionItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"-"` // Unit price in cents, rendered as decimal
	Quantity int    `json:"quantity"`
	Type     string `json:"type"` // service, product or giftcard
}

// MarshalJSON renders the unit price as a two-decimal amount
func (i TransactionItem) MarshalJSON() ([]byte, error) {
	type Alias TransactionItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(i),
		Price: float64(i.Price) / 100,
	})
}

// UnmarshalJSON parses the decimal unit price back into cents
func (i *TransactionItem) UnmarshalJSON(data []byte) error {
	type Alias TransactionItem
	aux := &struct {
		*Alias
		Price float64 `json:"price"`
	}{Alias: (*Alias)(i)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	i.Price = int64(math.Round(aux.Price * 100))
	return nil
}

// LineTotal returns price x quantity in cents
func (i TransactionItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
