package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// InvoiceService implements ports.InvoiceService.
type InvoiceService struct {
	repo   ports.InvoiceRepository
	logger zerolog.Logger
}

func NewInvoiceService(repo ports.InvoiceRepository, logger zerolog.Logger) *InvoiceService {
	return &InvoiceService{repo: repo, logger: logger}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if input.ClientID == "" || input.Amount <= 0 {
		return nil, fmt.Errorf("create invoice: client and positive amount are required")
	}

	number := input.Number
	if number == "" {
		number = generateInvoiceNumber()
	}

	now := time.Now().UTC()
	inv := &domain.Invoice{
		Number:      number,
		ClientID:    input.ClientID,
		CaseID:      input.CaseID,
		Amount:      input.Amount,
		Description: input.Description,
		Status:      domain.InvoiceUnpaid,
		DueDate:     input.DueDate,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.Error().Err(err).Str("number", number).Msg("failed to create invoice")
		return nil, err
	}
	s.logger.Info().Str("number", number).Str("client_id", input.ClientID).Msg("invoice created")
	return inv, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.refreshOverdue(inv)
	return inv, nil
}

func (s *InvoiceService) ListInvoices(ctx context.Context, filter ports.ListInvoicesFilter) (*ports.ListInvoicesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, inv := range items {
		s.refreshOverdue(inv)
	}
	return &ports.ListInvoicesResult{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	inv.Status = domain.InvoicePaid
	inv.PaidAt = &now
	inv.UpdatedAt = now
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// refreshOverdue derives the overdue display status; the stored status
// stays unpaid until payment.
func (s *InvoiceService) refreshOverdue(inv *domain.Invoice) {
	if inv.Status == domain.InvoiceUnpaid && inv.DueDate != nil && inv.DueDate.Before(time.Now().UTC()) {
		inv.Status = domain.InvoiceOverdue
	}
}

// generateInvoiceNumber returns a number in the format INV-<yyyymm>-<3 digits>.
func generateInvoiceNumber() string {
	b := make([]byte, 2)
	_, _ = rand.Read(b)
	n := (int(b[0])<<8 | int(b[1])) % 1000
	return fmt.Sprintf("INV-%s-%03d", time.Now().UTC().Format("200601"), n)
}
