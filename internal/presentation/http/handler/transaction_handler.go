package handler

import (
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/application/service"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/request"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/response"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// TransactionHandler handles ledger-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// toCents converts a decimal amount to cents
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Create handles a sale submission
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.CartItemInput, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, service.CartItemInput{
			Name:     line.Name,
			Price:    toCents(line.Price),
			Quantity: line.Quantity,
			Type:     line.Type,
		})
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		Items:               items,
		PaymentMethod:       enum.PaymentMethod(req.PaymentMethod),
		PrimaryClientID:     req.PrimaryClientID,
		AdditionalClientIDs: req.AdditionalClientIDs,
		Notes:               req.Notes,
		CreatedByID:         *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", transaction)
}

// Get handles getting a single ledger row with its client links
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", transaction)
}

// List handles listing ledger rows (supports both page-based and cursor-based pagination)
func (h *TransactionHandler) List(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	if cursor := c.Query("cursor"); cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, &filter)
		return
	}

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}
	applyTransactionFilter(params, nil, &filter)

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// listWithCursor handles listing ledger rows with cursor-based pagination
func (h *TransactionHandler) listWithCursor(c *gin.Context, filter *request.TransactionFilterRequest) {
	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	params := &repository.TransactionCursorFilterParams{
		Cursor: &pagination.CursorParams{
			Cursor:    c.Query("cursor"),
			Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
			Limit:     limit,
		},
	}
	applyTransactionFilter(nil, params, filter)

	result, err := h.transactionService.ListTransactionsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Transactions retrieved successfully", result)
}

// applyTransactionFilter copies the query filters onto whichever param
// struct is in use.
func applyTransactionFilter(page *repository.TransactionFilterParams, cursor *repository.TransactionCursorFilterParams, filter *request.TransactionFilterRequest) {
	var kind *enum.TransactionKind
	if filter.Kind != "" {
		k := enum.TransactionKind(filter.Kind)
		kind = &k
	}
	var method *enum.PaymentMethod
	if filter.PaymentMethod != "" {
		m := enum.PaymentMethod(filter.PaymentMethod)
		method = &m
	}
	var clientID *uuid.UUID
	if filter.ClientID != "" {
		if id, err := uuid.Parse(filter.ClientID); err == nil {
			clientID = &id
		}
	}
	var startDate, endDate *time.Time
	if filter.StartDate != "" {
		if t, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			startDate = &t
		}
	}
	if filter.EndDate != "" {
		if t, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			end := t.AddDate(0, 0, 1)
			endDate = &end
		}
	}

	if page != nil {
		page.Kind = kind
		page.PaymentMethod = method
		page.ClientID = clientID
		page.StartDate = startDate
		page.EndDate = endDate
	}
	if cursor != nil {
		cursor.Kind = kind
		cursor.PaymentMethod = method
		cursor.ClientID = clientID
		cursor.StartDate = startDate
		cursor.EndDate = endDate
	}
}

// Refund handles refunding a sale
func (h *TransactionHandler) Refund(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.RefundTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Refund reason is required")
		return
	}

	refund, err := h.transactionService.RefundTransaction(c.Request.Context(), &service.RefundTransactionInput{
		TransactionID: id,
		Reason:        req.Reason,
		ActorID:       *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Refund created successfully", refund)
}

// UpdateNotes handles updating the notes of a ledger row
func (h *TransactionHandler) UpdateNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.UpdateTransactionNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transaction, err := h.transactionService.UpdateNotes(c.Request.Context(), id, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Notes updated successfully", transaction)
}

// AttachPhoto handles attaching a result photo to a ledger row
func (h *TransactionHandler) AttachPhoto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.AttachPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	transaction, err := h.transactionService.AttachPhoto(c.Request.Context(), id, req.PhotoURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Photo attached successfully", transaction)
}

// RebuildHistory handles rebuilding the denormalized client history for a
// ledger row after a repair.
func (h *TransactionHandler) RebuildHistory(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.RebuildClientHistory(c.Request.Context(), id, *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client history rebuilt successfully", nil)
}
