package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/application/service"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/request"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/response"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// GiftCardHandler handles gift card HTTP requests
type GiftCardHandler struct {
	giftCardService *service.GiftCardService
}

// NewGiftCardHandler creates a new gift card handler
func NewGiftCardHandler(giftCardService *service.GiftCardService) *GiftCardHandler {
	return &GiftCardHandler{giftCardService: giftCardService}
}

// Purchase handles selling a gift card
func (h *GiftCardHandler) Purchase(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.PurchaseGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	card, err := h.giftCardService.PurchaseGiftCard(c.Request.Context(), &service.PurchaseGiftCardInput{
		Amount:        toCents(req.Amount),
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		PurchaserName: req.PurchaserName,
		RecipientName: req.RecipientName,
		ClientID:      req.ClientID,
		CreatedByID:   *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Gift card purchased successfully", card)
}

// Redeem handles redeeming a gift card by code
func (h *GiftCardHandler) Redeem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.RedeemGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Gift card code is required")
		return
	}

	card, err := h.giftCardService.RedeemGiftCard(c.Request.Context(), req.Code, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Gift card redeemed successfully", card)
}

// Get handles getting a gift card by ID
func (h *GiftCardHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid gift card ID")
		return
	}

	card, err := h.giftCardService.GetGiftCard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Gift card retrieved successfully", card)
}

// GetByCode handles looking up a gift card by its printed code
func (h *GiftCardHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")

	card, err := h.giftCardService.GetGiftCardByCode(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Gift card retrieved successfully", card)
}

// List handles listing gift cards with an optional status filter
func (h *GiftCardHandler) List(c *gin.Context) {
	var filter struct {
		Status  string `form:"status"`
		Page    int    `form:"page"`
		PerPage int    `form:"per_page"`
	}
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}
	params.Validate()

	result, err := h.giftCardService.ListGiftCards(c.Request.Context(), params, filter.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Gift cards retrieved successfully", result)
}
