package entity

// ReceiptHeader holds the salon header printed at the top of a receipt.
type ReceiptHeader struct {
	SalonName string `json:"salon_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing a printable ticket.
// It is NOT a database entity; it is composed from a ledger row at print time.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	Number        string        `json:"number"`
	Date          string        `json:"date"`
	Operator      string        `json:"operator,omitempty"`
	Client        string        `json:"client,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	IsRefund      bool          `json:"is_refund,omitempty"`
	RefundReason  string        `json:"refund_reason,omitempty"`
	Items         []ReceiptItem `json:"items"`
	Total         float64       `json:"total"`
}
