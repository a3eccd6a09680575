package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashClosure records the end-of-day drawer count. One closure per
// calendar date, enforced by the unique index on ClosureDate; rows are
// never updated after creation.
//
// ExpectedCash = OpeningCash + CashIn - CashOut
// Delta        = CountedCash - ExpectedCash (positive = surplus)
type CashClosure struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClosureDate string    `gorm:"size:10;uniqueIndex;not null" json:"closure_date"` // YYYY-MM-DD
	OpeningCash int64     `gorm:"not null" json:"-"`                                // All amounts in cents
	CashIn      int64     `gorm:"not null" json:"-"`
	CashOut     int64     `gorm:"not null" json:"-"`
	CountedCash int64     `gorm:"not null" json:"-"`
	Delta       int64     `gorm:"not null" json:"-"`
	Note        *string   `gorm:"type:text" json:"note,omitempty"`
	ClosedByID  uuid.UUID `gorm:"type:uuid;not null;index" json:"closed_by_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	ClosedBy User `gorm:"foreignKey:ClosedByID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c CashClosure) MarshalJSON() ([]byte, error) {
	type Alias CashClosure
	return json.Marshal(&struct {
		Alias
		OpeningCash  float64 `json:"opening_cash"`
		CashIn       float64 `json:"cash_in"`
		CashOut      float64 `json:"cash_out"`
		ExpectedCash float64 `json:"expected_cash"`
		CountedCash  float64 `json:"counted_cash"`
		Delta        float64 `json:"delta"`
	}{
		Alias:        Alias(c),
		OpeningCash:  float64(c.OpeningCash) / 100,
		CashIn:       float64(c.CashIn) / 100,
		CashOut:      float64(c.CashOut) / 100,
		ExpectedCash: float64(c.ExpectedCash()) / 100,
		CountedCash:  float64(c.CountedCash) / 100,
		Delta:        float64(c.Delta) / 100,
	})
}

// ExpectedCash returns the drawer amount the count should have found, in cents
func (c *CashClosure) ExpectedCash() int64 {
	return c.OpeningCash + c.CashIn - c.CashOut
}

// BeforeCreate generates a UUID before creating a new closure
func (c *CashClosure) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashClosure model
func (CashClosure) TableName() string {
	return "cash_closures"
}
