package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/lumierestudio/salon-api/internal/domain/entity"
	"github.com/lumierestudio/salon-api/internal/domain/enum"
	"github.com/lumierestudio/salon-api/internal/domain/repository"
	"github.com/lumierestudio/salon-api/pkg/apperror"
	"github.com/lumierestudio/salon-api/pkg/printer"
)

// PrinterService handles ticket formatting and thermal printing.
type PrinterService struct {
	printer         printer.Printer
	transactionRepo repository.TransactionRepository
	closureRepo     repository.CashClosureRepository
	header          entity.ReceiptHeader
	printerType     string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	transactionRepo repository.TransactionRepository,
	closureRepo repository.CashClosureRepository,
	header entity.ReceiptHeader,
	printerType string,
) *PrinterService {
	return &PrinterService{
		printer:         p,
		transactionRepo: transactionRepo,
		closureRepo:     closureRepo,
		header:          header,
		printerType:     printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			SalonName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "+41 00 000 00 00",
		},
		Number:   "TEST-001",
		Date:     "Test Date",
		Operator: "System",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		Total: 20.00,
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintTransactionReceipt fetches a ledger row (with its client links)
// and prints its ticket. Refund tickets carry the reason and show
// negative amounts as stored.
func (s *PrinterService) PrintTransactionReceipt(ctx context.Context, transactionID uuid.UUID) (*entity.Receipt, error) {
	transaction, err := s.transactionRepo.GetWithLinks(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	receipt := &entity.Receipt{
		Header:        s.header,
		Number:        fmt.Sprintf("#%d", transaction.Number),
		Date:          transaction.CreatedAt.Format("02.01.2006 15:04"),
		Operator:      transaction.CreatedBy.FullName(),
		PaymentMethod: string(transaction.PaymentMethod),
		IsRefund:      transaction.Kind == enum.TransactionKindRefund,
		Total:         float64(transaction.TotalAmount) / 100,
	}
	if transaction.RefundReason != nil {
		receipt.RefundReason = *transaction.RefundReason
	}
	for _, link := range transaction.Links {
		if link.IsPrimary {
			receipt.Client = link.Client.FullName()
			break
		}
	}

	sign := int64(1)
	if receipt.IsRefund {
		sign = -1
	}
	for _, item := range transaction.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: float64(sign*item.Price) / 100,
			Total:     float64(sign*item.LineTotal()) / 100,
		})
	}

	data := FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (transaction %s): %v", transactionID, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// PrintClosureReport prints the end-of-day drawer report for a closure.
func (s *PrinterService) PrintClosureReport(ctx context.Context, closureID uuid.UUID) (*entity.CashClosure, error) {
	closure, err := s.closureRepo.GetByID(ctx, closureID)
	if err != nil {
		return nil, err
	}
	if closure == nil {
		return nil, apperror.NewNotFoundError("Cash closure")
	}

	data := s.formatClosureReport(closure)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (closure %s): %v", closureID, err)
		return closure, fmt.Errorf("failed to print closure report: %w", err)
	}

	return closure, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.SalonName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	if r.IsRefund {
		doc.SetAlign(printer.AlignCenter).
			SetBold(true).
			Text("*** REFUND ***").
			SetBold(false).
			SetAlign(printer.AlignLeft)
	}

	// Ticket info
	doc.KeyValue("Ticket:", r.Number).
		KeyValue("Date:", r.Date)

	if r.Operator != "" {
		doc.KeyValue("Operator:", r.Operator)
	}
	if r.Client != "" {
		doc.KeyValue("Client:", r.Client)
	}
	if r.PaymentMethod != "" {
		doc.KeyValue("Payment:", r.PaymentMethod)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Total
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	if r.RefundReason != "" {
		doc.KeyValue("Reason:", r.RefundReason)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your visit!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	// Kick the drawer so change can be handed out
	if r.PaymentMethod == string(enum.PaymentMethodCash) {
		doc.OpenDrawer()
	}

	return doc.Bytes()
}

func (s *PrinterService) formatClosureReport(c *entity.CashClosure) []byte {
	doc := printer.NewDocument(32)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(s.header.SalonName).
		SetFontSize(printer.FontNormal).
		Text("DAILY CLOSURE").
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Date:", c.ClosureDate)
	if c.ClosedBy.FirstName != "" {
		doc.KeyValue("Closed by:", c.ClosedBy.FullName())
	}

	doc.Separator('-')

	doc.KeyValue("Opening:", fmt.Sprintf("%.2f", float64(c.OpeningCash)/100)).
		KeyValue("Cash in:", fmt.Sprintf("%.2f", float64(c.CashIn)/100)).
		KeyValue("Cash out:", fmt.Sprintf("%.2f", float64(c.CashOut)/100)).
		KeyValue("Expected:", fmt.Sprintf("%.2f", float64(c.ExpectedCash())/100)).
		KeyValue("Counted:", fmt.Sprintf("%.2f", float64(c.CountedCash)/100))

	doc.SetBold(true).
		KeyValue("DELTA:", fmt.Sprintf("%+.2f", float64(c.Delta)/100)).
		SetBold(false)

	if c.Note != nil && *c.Note != "" {
		doc.Separator('-').
			Text("Note: " + *c.Note)
	}

	doc.FeedLines(3).
		PartialCut().
		// The drawer stays open for the evening count
		OpenDrawer()

	return doc.Bytes()
}
