package enum

// TransactionKind distinguishes sales from their mirrored refunds in the ledger
type TransactionKind string

const (
	TransactionKindSale   TransactionKind = "sale"
	TransactionKindRefund TransactionKind = "refund"
)

func (k TransactionKind) IsValid() bool {
	return k == TransactionKindSale || k == TransactionKindRefund
}

func (k TransactionKind) String() string {
	return string(k)
}
