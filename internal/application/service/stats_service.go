package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// Supported statistics periods
const (
	PeriodDay    = "day"
	Period7Days  = "7days"
	Period30Days = "30days"
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodYear   = "year"
	PeriodCustom = "custom"
)

// StatsService assembles read-only rollups over the ledger. It never
// writes; a period with no rows yields all-zero results.
type StatsService struct {
	analyticsRepo repository.AnalyticsRepository
	location      *time.Location
	topLimit      int
}

// NewStatsService creates a new statistics service
func NewStatsService(analyticsRepo repository.AnalyticsRepository, location *time.Location) *StatsService {
	if location == nil {
		location = time.Local
	}
	return &StatsService{
		analyticsRepo: analyticsRepo,
		location:      location,
		topLimit:      10,
	}
}

// StatsPeriodInput selects the reporting window. Date fields are
// YYYY-MM-DD; Month is YYYY-MM; Year is YYYY.
type StatsPeriodInput struct {
	Period    string `form:"period"`
	Date      string `form:"date"`
	Month     string `form:"month"`
	Year      string `form:"year"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// MethodStats is the per-payment-method slice of a period
type MethodStats struct {
	Method  string  `json:"method"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// TopClientStats is one row of the top-clients ranking
type TopClientStats struct {
	ClientID   string  `json:"client_id"`
	ClientName string  `json:"client_name"`
	TotalSpent float64 `json:"total_spent"`
	VisitCount int64   `json:"visit_count"`
}

// TopItemStats is one row of the top-items ranking
type TopItemStats struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	QuantitySold int64   `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// DailyStats is one day's bucket within the period
type DailyStats struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

// StatsResult is the full rollup for one period
type StatsResult struct {
	Period           string           `json:"period"`
	StartDate        string           `json:"start_date"`
	EndDate          string           `json:"end_date"` // inclusive
	Revenue          float64          `json:"revenue"`
	TransactionCount int64            `json:"transaction_count"`
	SaleCount        int64            `json:"sale_count"`
	RefundCount      int64            `json:"refund_count"`
	DistinctClients  int64            `json:"distinct_clients"`
	ByMethod         []MethodStats    `json:"by_method"`
	TopClients       []TopClientStats `json:"top_clients"`
	TopItems         []TopItemStats   `json:"top_items"`
	Daily            []DailyStats     `json:"daily"`
}

// GetStatistics computes the rollup for the requested period
func (s *StatsService) GetStatistics(ctx context.Context, input *StatsPeriodInput) (*StatsResult, error) {
	start, end, err := s.resolvePeriod(input)
	if err != nil {
		return nil, err
	}

	totals, err := s.analyticsRepo.GetPeriodTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.analyticsRepo.GetMethodBreakdown(ctx, start, end)
	if err != nil {
		return nil, err
	}
	topClients, err := s.analyticsRepo.GetTopClients(ctx, start, end, s.topLimit)
	if err != nil {
		return nil, err
	}
	topItems, err := s.analyticsRepo.GetTopItems(ctx, start, end, s.topLimit)
	if err != nil {
		return nil, err
	}
	daily, err := s.analyticsRepo.GetDailyRevenue(ctx, start, end)
	if err != nil {
		return nil, err
	}

	result := &StatsResult{
		Period:           input.Period,
		StartDate:        start.Format("2006-01-02"),
		EndDate:          end.AddDate(0, 0, -1).Format("2006-01-02"),
		Revenue:          float64(totals.Revenue) / 100,
		TransactionCount: totals.TransactionCount,
		SaleCount:        totals.SaleCount,
		RefundCount:      totals.RefundCount,
		DistinctClients:  totals.DistinctClients,
		ByMethod:         make([]MethodStats, 0, len(breakdown)),
		TopClients:       make([]TopClientStats, 0, len(topClients)),
		TopItems:         make([]TopItemStats, 0, len(topItems)),
		Daily:            make([]DailyStats, 0, len(daily)),
	}
	for _, m := range breakdown {
		result.ByMethod = append(result.ByMethod, MethodStats{
			Method:  m.PaymentMethod,
			Revenue: float64(m.Revenue) / 100,
			Count:   m.Count,
		})
	}
	for _, c := range topClients {
		result.TopClients = append(result.TopClients, TopClientStats{
			ClientID:   c.ClientID.String(),
			ClientName: c.ClientName,
			TotalSpent: float64(c.TotalSpent) / 100,
			VisitCount: c.VisitCount,
		})
	}
	for _, i := range topItems {
		result.TopItems = append(result.TopItems, TopItemStats{
			Name:         i.Name,
			Type:         i.Type,
			QuantitySold: i.QuantitySold,
			Revenue:      float64(i.Revenue) / 100,
		})
	}
	for _, d := range daily {
		result.Daily = append(result.Daily, DailyStats{
			Date:    d.Date,
			Revenue: float64(d.Revenue) / 100,
			Count:   d.Count,
		})
	}

	return result, nil
}

// ExportStatistics renders the period rollup as an Excel workbook
func (s *StatsService) ExportStatistics(ctx context.Context, input *StatsPeriodInput) (*excelize.File, error) {
	result, err := s.GetStatistics(ctx, input)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Statistics"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Period", result.StartDate + " to " + result.EndDate},
		{"Revenue", result.Revenue},
		{"Transactions", result.TransactionCount},
		{"Sales", result.SaleCount},
		{"Refunds", result.RefundCount},
		{"Distinct clients", result.DistinctClients},
		{},
		{"Payment method", "Revenue", "Count"},
	}
	for _, m := range result.ByMethod {
		rows = append(rows, []interface{}{m.Method, m.Revenue, m.Count})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Top clients", "Spent", "Visits"})
	for _, c := range result.TopClients {
		rows = append(rows, []interface{}{c.ClientName, c.TotalSpent, c.VisitCount})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Top items", "Type", "Quantity", "Revenue"})
	for _, i := range result.TopItems {
		rows = append(rows, []interface{}{i.Name, i.Type, i.QuantitySold, i.Revenue})
	}
	rows = append(rows, []interface{}{}, []interface{}{"Date", "Revenue", "Transactions"})
	for _, d := range result.Daily {
		rows = append(rows, []interface{}{d.Date, d.Revenue, d.Count})
	}

	for idx, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, idx+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// resolvePeriod turns the period selector into a half-open [start, end)
// window in the salon's timezone.
func (s *StatsService) resolvePeriod(input *StatsPeriodInput) (time.Time, time.Time, error) {
	now := time.Now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	switch input.Period {
	case PeriodDay, "":
		day := today
		if input.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", input.Date, s.location)
			if err != nil {
				return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
			}
			day = parsed
		}
		return day, day.AddDate(0, 0, 1), nil

	case Period7Days:
		return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1), nil

	case Period30Days:
		return today.AddDate(0, 0, -29), today.AddDate(0, 0, 1), nil

	case PeriodWeek:
		day := today
		if input.Date != "" {
			parsed, err := time.ParseInLocation("2006-01-02", input.Date, s.location)
			if err != nil {
				return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
			}
			day = parsed
		}
		// Week starts Monday
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7), nil

	case PeriodMonth:
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.location)
		if input.Month != "" {
			parsed, err := time.ParseInLocation("2006-01", input.Month, s.location)
			if err != nil {
				return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid month, expected YYYY-MM")
			}
			month = parsed
		}
		return month, month.AddDate(0, 1, 0), nil

	case PeriodYear:
		year := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, s.location)
		if input.Year != "" {
			parsed, err := time.ParseInLocation("2006", input.Year, s.location)
			if err != nil {
				return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid year, expected YYYY")
			}
			year = parsed
		}
		return year, year.AddDate(1, 0, 0), nil

	case PeriodCustom:
		if input.StartDate == "" || input.EndDate == "" {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("Custom period requires start_date and end_date")
		}
		start, err := time.ParseInLocation("2006-01-02", input.StartDate, s.location)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid start_date, expected YYYY-MM-DD")
		}
		end, err := time.ParseInLocation("2006-01-02", input.EndDate, s.location)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid end_date, expected YYYY-MM-DD")
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, apperror.NewBadRequestError("end_date must not be before start_date")
		}
		return start, end.AddDate(0, 0, 1), nil

	default:
		return time.Time{}, time.Time{}, apperror.NewBadRequestError(fmt.Sprintf("Unknown period %q", input.Period))
	}
}
