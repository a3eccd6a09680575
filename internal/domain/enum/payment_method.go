package enum

// PaymentMethod represents how a transaction was settled at the register
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodTwint PaymentMethod = "twint"
	PaymentMethodMixed PaymentMethod = "mixed"
)

// IsValid reports whether the payment method is one of the supported values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTwint, PaymentMethodMixed:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentMethods returns all supported payment methods
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodTwint, PaymentMethodMixed}
}
