package service

import (
	"testing"
	"time"

	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func newStatsService(db *gorm.DB) *StatsService {
	return NewStatsService(repository.NewAnalyticsRepository(db), time.UTC)
}

func TestGetStatisticsEmptyPeriod(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)

	result, err := svc.GetStatistics(ctx(), &StatsPeriodInput{
		Period:    PeriodCustom,
		StartDate: "2026-01-01",
		EndDate:   "2026-01-31",
	})
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}

	if result.Revenue != 0 {
		t.Errorf("revenue = %.2f, want 0", result.Revenue)
	}
	if result.TransactionCount != 0 || result.SaleCount != 0 || result.RefundCount != 0 {
		t.Errorf("counts = %d/%d/%d, want all 0", result.TransactionCount, result.SaleCount, result.RefundCount)
	}
	if len(result.ByMethod) != 0 || len(result.TopClients) != 0 || len(result.TopItems) != 0 || len(result.Daily) != 0 {
		t.Error("expected empty breakdowns for a period without rows")
	}
	if result.StartDate != "2026-01-01" || result.EndDate != "2026-01-31" {
		t.Errorf("window = %s..%s", result.StartDate, result.EndDate)
	}
}

func TestGetStatisticsRollup(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)
	user := createTestUser(t, db)

	day := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 4500, day)
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCard, 2490, day.Add(time.Hour))
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, -4500, day.Add(2*time.Hour))
	// Outside the window
	seedLedgerRow(t, db, user.ID, enum.PaymentMethodCash, 9999, day.AddDate(0, 1, 0))

	result, err := svc.GetStatistics(ctx(), &StatsPeriodInput{
		Period:    PeriodCustom,
		StartDate: "2026-04-01",
		EndDate:   "2026-04-30",
	})
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}

	// 45.00 + 24.90 - 45.00
	if result.Revenue != 24.90 {
		t.Errorf("revenue = %.2f, want 24.90", result.Revenue)
	}
	if result.TransactionCount != 3 {
		t.Errorf("transactions = %d, want 3", result.TransactionCount)
	}
	if result.SaleCount != 2 {
		t.Errorf("sales = %d, want 2", result.SaleCount)
	}
	if result.RefundCount != 1 {
		t.Errorf("refunds = %d, want 1", result.RefundCount)
	}

	methods := make(map[string]MethodStats, len(result.ByMethod))
	for _, m := range result.ByMethod {
		methods[m.Method] = m
	}
	if cash, ok := methods["cash"]; !ok || cash.Revenue != 0 || cash.Count != 2 {
		t.Errorf("cash slice = %+v, want revenue 0.00 over 2 rows", methods["cash"])
	}
	if card, ok := methods["card"]; !ok || card.Revenue != 24.90 || card.Count != 1 {
		t.Errorf("card slice = %+v, want revenue 24.90 over 1 row", methods["card"])
	}

	if len(result.Daily) != 1 || result.Daily[0].Date != "2026-04-10" {
		t.Fatalf("daily buckets = %+v, want one bucket for 2026-04-10", result.Daily)
	}
	if result.Daily[0].Revenue != 24.90 || result.Daily[0].Count != 3 {
		t.Errorf("daily bucket = %+v", result.Daily[0])
	}
}

func TestGetStatisticsTopClients(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)
	user := createTestUser(t, db)
	txSvc := newTransactionService(db)
	marie := createTestClient(t, db, "Marie", "Dupont")
	anna := createTestClient(t, db, "Anna", "Rossi")

	for _, spend := range []struct {
		client *entity.Client
		amount int64
	}{
		{marie, 8900},
		{marie, 4500},
		{anna, 2500},
	} {
		if _, err := txSvc.CreateTransaction(ctx(), &CreateTransactionInput{
			Items:           []CartItemInput{{Name: "Prestation", Price: spend.amount, Quantity: 1, Type: "service"}},
			PaymentMethod:   enum.PaymentMethodCard,
			PrimaryClientID: &spend.client.ID,
			CreatedByID:     user.ID,
		}); err != nil {
			t.Fatalf("seed sale: %v", err)
		}
	}

	today := time.Now().UTC().Format("2006-01-02")
	result, err := svc.GetStatistics(ctx(), &StatsPeriodInput{
		Period:    PeriodCustom,
		StartDate: today,
		EndDate:   today,
	})
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}

	if len(result.TopClients) != 2 {
		t.Fatalf("top clients = %d, want 2", len(result.TopClients))
	}
	if result.TopClients[0].ClientName != "Marie Dupont" {
		t.Errorf("top client = %s, want Marie Dupont", result.TopClients[0].ClientName)
	}
	if result.TopClients[0].TotalSpent != 134.00 {
		t.Errorf("top client spent = %.2f, want 134.00", result.TopClients[0].TotalSpent)
	}
	if result.TopClients[0].VisitCount != 2 {
		t.Errorf("top client visits = %d, want 2", result.TopClients[0].VisitCount)
	}
	if result.DistinctClients != 2 {
		t.Errorf("distinct clients = %d, want 2", result.DistinctClients)
	}
}

func TestGetStatisticsUnknownPeriod(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)

	if _, err := svc.GetStatistics(ctx(), &StatsPeriodInput{Period: "fortnight"}); err == nil {
		t.Fatal("expected error for unknown period")
	}
}

func TestGetStatisticsCustomRequiresBothDates(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)

	if _, err := svc.GetStatistics(ctx(), &StatsPeriodInput{Period: PeriodCustom, StartDate: "2026-01-01"}); err == nil {
		t.Fatal("expected error for custom period without end_date")
	}
}
