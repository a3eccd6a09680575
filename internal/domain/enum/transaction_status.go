package enum

// TransactionStatus represents the settlement state of a ledger row.
// Completed register sales are written as paid; pending exists for
// gift-card orders awaiting settlement.
type TransactionStatus string

const (
	TransactionStatusPaid    TransactionStatus = "paid"
	TransactionStatusPending TransactionStatus = "pending"
)

func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPaid || s == TransactionStatusPending
}

func (s TransactionStatus) String() string {
	return string(s)
}
