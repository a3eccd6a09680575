package enum

// GiftCardStatus represents the lifecycle state of a gift card
type GiftCardStatus string

const (
	GiftCardStatusIssued   GiftCardStatus = "issued"
	GiftCardStatusRedeemed GiftCardStatus = "redeemed"
	GiftCardStatusExpired  GiftCardStatus = "expired"
)

func (s GiftCardStatus) IsValid() bool {
	switch s {
	case GiftCardStatusIssued, GiftCardStatusRedeemed, GiftCardStatusExpired:
		return true
	}
	return false
}

func (s GiftCardStatus) String() string {
	return string(s)
}
