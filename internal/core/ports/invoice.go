package ports

import (
	"context"
	"time"

	"github.com/simanis/notary-system/internal/core/domain"
)

// ListInvoicesFilter carries query parameters for the finance list.
type ListInvoicesFilter struct {
	Status   string
	ClientID string
	Search   string // partial match on invoice number or description
	Page     int
	Limit    int
}

// InvoiceRepository defines persistence operations for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	FindByID(ctx context.Context, id string) (*domain.Invoice, error)
	List(ctx context.Context, filter ListInvoicesFilter) ([]*domain.Invoice, int64, error)
	Update(ctx context.Context, inv *domain.Invoice) error
}

// CreateInvoiceInput carries the fields for a new invoice. Number is
// generated when empty.
type CreateInvoiceInput struct {
	Number      string
	ClientID    string
	CaseID      string
	Amount      float64
	Description string
	DueDate     *time.Time
	CreatedBy   string
}

// ListInvoicesResult is returned by ListInvoices.
type ListInvoicesResult struct {
	Items []*domain.Invoice
	Total int64
	Page  int
	Limit int
}

// InvoiceService defines finance use cases.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter ListInvoicesFilter) (*ListInvoicesResult, error)
	MarkPaid(ctx context.Context, id string) (*domain.Invoice, error)
}
