package request

// CreateClosureRequest represents the end-of-day count submission.
// Amounts are decimal; OpeningCash nil means the configured default
// float. CountedCash is a pointer so an omitted count is rejected
// while an explicit 0.00 (empty drawer) stays valid.
type CreateClosureRequest struct {
	Date        string   `json:"date" binding:"required"`
	OpeningCash *float64 `json:"opening_cash" binding:"omitempty,min=0"`
	CashOut     float64  `json:"cash_out" binding:"min=0"`
	CountedCash *float64 `json:"counted_cash" binding:"required,min=0"`
	Note        *string  `json:"note"`
}
