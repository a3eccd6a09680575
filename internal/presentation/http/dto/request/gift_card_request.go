package request

import "github.com/google/uuid"

// PurchaseGiftCardRequest represents a gift card purchase. Amount is decimal.
type PurchaseGiftCardRequest struct {
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	PaymentMethod string     `json:"payment_method" binding:"required"`
	PurchaserName string     `json:"purchaser_name" binding:"required,min=1,max=255"`
	RecipientName string     `json:"recipient_name" binding:"required,min=1,max=255"`
	ClientID      *uuid.UUID `json:"client_id"`
}

// RedeemGiftCardRequest redeems a gift card by its printed code
type RedeemGiftCardRequest struct {
	Code string `json:"code" binding:"required"`
}
