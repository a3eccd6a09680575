package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/application/service"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/request"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/response"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// CashClosureHandler handles end-of-day closure HTTP requests
type CashClosureHandler struct {
	closureService *service.CashClosureService
}

// NewCashClosureHandler creates a new cash closure handler
func NewCashClosureHandler(closureService *service.CashClosureService) *CashClosureHandler {
	return &CashClosureHandler{closureService: closureService}
}

// Create handles the end-of-day count submission
func (h *CashClosureHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.CountedCash == nil {
		response.BadRequest(c, "counted_cash is required")
		return
	}

	input := &service.CreateClosureInput{
		Date:        req.Date,
		CashOut:     toCents(req.CashOut),
		CountedCash: toCents(*req.CountedCash),
		Note:        req.Note,
		ClosedByID:  *userID,
	}
	if req.OpeningCash != nil {
		opening := toCents(*req.OpeningCash)
		input.OpeningCash = &opening
	}

	closure, err := h.closureService.CreateClosure(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash closure created successfully", closure)
}

// Preview handles computing the expected drawer amount before submission
func (h *CashClosureHandler) Preview(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.BadRequest(c, "date query parameter is required")
		return
	}

	var opening *int64
	if raw := c.Query("opening_cash"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(c, "Invalid opening_cash")
			return
		}
		cents := toCents(value)
		opening = &cents
	}

	preview, err := h.closureService.PreviewClosure(c.Request.Context(), date, opening)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Closure preview computed successfully", preview)
}

// Get handles getting a closure by ID
func (h *CashClosureHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid closure ID")
		return
	}

	closure, err := h.closureService.GetClosure(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash closure retrieved successfully", closure)
}

// GetByDate handles getting the closure for a calendar date
func (h *CashClosureHandler) GetByDate(c *gin.Context) {
	date := c.Param("date")

	closure, err := h.closureService.GetClosureByDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash closure retrieved successfully", closure)
}

// List handles listing closures, newest first
func (h *CashClosureHandler) List(c *gin.Context) {
	var filter struct {
		Page    int `form:"page"`
		PerPage int `form:"per_page"`
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

	result, err := h.closureService.ListClosures(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Cash closures retrieved successfully", result)
}
