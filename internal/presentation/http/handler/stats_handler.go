package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/lumierestudio/salon-api/internal/application/service"
	"github.com/lumierestudio/salon-api/internal/presentation/http/dto/response"
)

// StatsHandler handles statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new statistics handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Get handles computing the rollup for a period
func (h *StatsHandler) Get(c *gin.Context) {
	var input service.StatsPeriodInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.statsService.GetStatistics(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistics retrieved successfully", result)
}

// Export handles downloading the period rollup as an Excel workbook
func (h *StatsHandler) Export(c *gin.Context) {
	var input service.StatsPeriodInput
	if err := c.ShouldBindQuery(&input); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	file, err := h.statsService.ExportStatistics(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	filename := "statistics.xlsx"
	if input.Period != "" {
		filename = fmt.Sprintf("statistics-%s.xlsx", input.Period)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		response.InternalServerError(c, "Failed to write export")
	}
}
