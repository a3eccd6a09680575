package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"github.com/lumierestudio/salon-api/pkg/email"
	"github.com/lumierestudio/salon-api/pkg/pagination"
)

// CashClosureService handles the end-of-day drawer count. Exactly one
// closure per calendar date; cash-in is always recomputed from the
// ledger, never taken from the caller.
type CashClosureService struct {
	closureRepo     repository.CashClosureRepository
	transactionRepo repository.TransactionRepository
	auditRepo       repository.AuditLogRepository
	userRepo        repository.UserRepository
	settingsRepo    repository.SettingsRepository
	emailService    *email.EmailService
	location        *time.Location
	defaultOpening  int64 // cents
}

// NewCashClosureService creates a new cash closure service
func NewCashClosureService(
	closureRepo repository.CashClosureRepository,
	transactionRepo repository.TransactionRepository,
	auditRepo repository.AuditLogRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	emailService *email.EmailService,
	location *time.Location,
	defaultOpening int64,
) *CashClosureService {
	if location == nil {
		location = time.Local
	}
	return &CashClosureService{
		closureRepo:     closureRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		userRepo:        userRepo,
		settingsRepo:    settingsRepo,
		emailService:    emailService,
		location:        location,
		defaultOpening:  defaultOpening,
	}
}

// CreateClosureInput represents the closure submission. Amounts in cents.
// OpeningCash nil means the configured default float.
type CreateClosureInput struct {
	Date        string // YYYY-MM-DD
	OpeningCash *int64
	CashOut     int64
	CountedCash int64
	Note        *string
	ClosedByID  uuid.UUID
}

// ClosurePreview is the computed state of the drawer before submission
type ClosurePreview struct {
	Date         string  `json:"date"`
	OpeningCash  float64 `json:"opening_cash"`
	CashIn       float64 `json:"cash_in"`
	ExpectedCash float64 `json:"expected_cash"`
	AlreadyDone  bool    `json:"already_done"`
}

// CreateClosure computes cash-in from the day's cash/paid ledger rows,
// derives expected and delta, and writes the closure plus an audit entry.
// A second closure for the same date is refused.
func (s *CashClosureService) CreateClosure(ctx context.Context, input *CreateClosureInput) (*entity.CashClosure, error) {
	dayStart, dayEnd, err := s.dayBounds(input.Date)
	if err != nil {
		return nil, err
	}
	if input.CashOut < 0 {
		return nil, apperror.NewBadRequestError("Cash out must not be negative")
	}
	if input.CountedCash < 0 {
		return nil, apperror.NewBadRequestError("Counted cash must not be negative")
	}

	existing, err := s.closureRepo.GetByDate(ctx, input.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Cash closure already exists for this date")
	}

	cashIn, err := s.transactionRepo.SumCashPaid(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	opening := s.defaultOpening
	if input.OpeningCash != nil {
		opening = *input.OpeningCash
	}

	closure := &entity.CashClosure{
		ClosureDate: input.Date,
		OpeningCash: opening,
		CashIn:      cashIn,
		CashOut:     input.CashOut,
		CountedCash: input.CountedCash,
		Note:        input.Note,
		ClosedByID:  input.ClosedByID,
	}
	closure.Delta = input.CountedCash - closure.ExpectedCash()

	if err := s.closureRepo.Create(ctx, closure); err != nil {
		return nil, err
	}

	s.writeAudit(ctx, input.ClosedByID, closure)
	s.sendClosureReport(ctx, closure)

	return closure, nil
}

// PreviewClosure computes the expected drawer amount for a date without
// writing anything, for the count screen.
func (s *CashClosureService) PreviewClosure(ctx context.Context, date string, openingCash *int64) (*ClosurePreview, error) {
	dayStart, dayEnd, err := s.dayBounds(date)
	if err != nil {
		return nil, err
	}

	existing, err := s.closureRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	cashIn, err := s.transactionRepo.SumCashPaid(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	opening := s.defaultOpening
	if openingCash != nil {
		opening = *openingCash
	}

	return &ClosurePreview{
		Date:         date,
		OpeningCash:  float64(opening) / 100,
		CashIn:       float64(cashIn) / 100,
		ExpectedCash: float64(opening+cashIn) / 100,
		AlreadyDone:  existing != nil,
	}, nil
}

// GetClosure retrieves a closure by ID
func (s *CashClosureService) GetClosure(ctx context.Context, id uuid.UUID) (*entity.CashClosure, error) {
	closure, err := s.closureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if closure == nil {
		return nil, apperror.NewNotFoundError("Cash closure")
	}
	return closure, nil
}

// GetClosureByDate retrieves a closure by its YYYY-MM-DD date
func (s *CashClosureService) GetClosureByDate(ctx context.Context, date string) (*entity.CashClosure, error) {
	if _, _, err := s.dayBounds(date); err != nil {
		return nil, err
	}
	closure, err := s.closureRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if closure == nil {
		return nil, apperror.NewNotFoundError("Cash closure")
	}
	return closure, nil
}

// ListClosures lists closures, newest first
func (s *CashClosureService) ListClosures(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CashClosure], error) {
	closures, total, err := s.closureRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(closures, pag), nil
}

// dayBounds returns the [00:00, next day 00:00) window for a date in the
// salon's timezone.
func (s *CashClosureService) dayBounds(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("Invalid closure date, expected YYYY-MM-DD")
	}
	return day, day.AddDate(0, 0, 1), nil
}

// sendClosureReport emails the day's figures to the closer when their
// settings ask for closure reports. Failures are logged, never returned.
func (s *CashClosureService) sendClosureReport(ctx context.Context, closure *entity.CashClosure) {
	if s.emailService == nil {
		return
	}

	settings, err := s.settingsRepo.GetByUserID(ctx, closure.ClosedByID)
	if err != nil || settings == nil || !settings.EmailNotifications || !settings.ClosureReports {
		return
	}

	user, err := s.userRepo.GetByID(ctx, closure.ClosedByID)
	if err != nil || user == nil {
		return
	}

	report := email.ClosureReportData{
		Date:     closure.ClosureDate,
		Opening:  fmt.Sprintf("%.2f", float64(closure.OpeningCash)/100),
		CashIn:   fmt.Sprintf("%.2f", float64(closure.CashIn)/100),
		CashOut:  fmt.Sprintf("%.2f", float64(closure.CashOut)/100),
		Expected: fmt.Sprintf("%.2f", float64(closure.ExpectedCash())/100),
		Counted:  fmt.Sprintf("%.2f", float64(closure.CountedCash)/100),
		Delta:    fmt.Sprintf("%+.2f", float64(closure.Delta)/100),
		ClosedBy: user.FullName(),
	}
	if err := s.emailService.SendClosureReportEmail(user.Email, report); err != nil {
		log.Printf("Closure report email failed (closure %s): %v", closure.ID, err)
	}
}

func (s *CashClosureService) writeAudit(ctx context.Context, actorID uuid.UUID, closure *entity.CashClosure) {
	writeAuditEntry(ctx, s.auditRepo, actorID, entity.AuditActionCashClosure, "cash_closure", &closure.ID, map[string]interface{}{
		"closure_date": closure.ClosureDate,
		"expected":     float64(closure.ExpectedCash()) / 100,
		"counted":      float64(closure.CountedCash) / 100,
		"delta":        float64(closure.Delta) / 100,
	})
}
