package ports

import (
	"context"
	"time"

	"github.com/simanis/notary-system/internal/core/domain"
)

// ListCasesFilter carries all query parameters for listing cases.
type ListCasesFilter struct {
	Status   string // optional: filter by case status
	Category string // optional: filter by service category type
	Priority string // optional: filter by priority
	ClientID string // optional: scope to one client
	Search   string // optional: case-insensitive partial match on title or reference_number
	SortBy   string // optional: comparable field name; empty = created_at
	SortAsc  bool   // ascending when true; default order is newest-created-first
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// CaseRepository defines persistence operations for cases.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	// FindByReference retrieves a case by its reference number.
	FindByReference(ctx context.Context, referenceNumber string) (*domain.Case, error)
	// List returns a page of cases matching filter and the total count.
	List(ctx context.Context, filter ListCasesFilter) ([]*domain.Case, int64, error)
	// Update replaces the mutable fields of an existing case.
	Update(ctx context.Context, c *domain.Case) error
	// UpdateStatus sets the case status and the matching lifecycle
	// timestamp in a single write.
	UpdateStatus(ctx context.Context, referenceNumber string, status domain.CaseStatus, ts time.Time) error
	// CountByStatus returns case counts grouped by status for the dashboard.
	CountByStatus(ctx context.Context) (map[domain.CaseStatus]int64, error)
}

// TimelineRepository handles the append-only case audit trail.
type TimelineRepository interface {
	Append(ctx context.Context, entry *domain.TimelineEntry) error
	// ListByCase returns entries newest-first.
	ListByCase(ctx context.Context, caseID string) ([]*domain.TimelineEntry, error)
}

// DocumentRepository handles per-document checklist records.
type DocumentRepository interface {
	Insert(ctx context.Context, doc *domain.CaseDocument) error
	InsertMany(ctx context.Context, docs []*domain.CaseDocument) error
	ListByCase(ctx context.Context, caseID string) ([]*domain.CaseDocument, error)
	FindByID(ctx context.Context, id string) (*domain.CaseDocument, error)
	Update(ctx context.Context, doc *domain.CaseDocument) error
}

// DeedDraftRepository handles versioned deed drafts.
type DeedDraftRepository interface {
	Insert(ctx context.Context, d *domain.DeedDraft) error
	ListByCase(ctx context.Context, caseID string) ([]*domain.DeedDraft, error)
	FindByID(ctx context.Context, id string) (*domain.DeedDraft, error)
	Update(ctx context.Context, d *domain.DeedDraft) error
}

// LegalityRepository handles per-case legality verification records.
type LegalityRepository interface {
	Insert(ctx context.Context, v *domain.LegalityVerification) error
	ListByCase(ctx context.Context, caseID string) ([]*domain.LegalityVerification, error)
	Update(ctx context.Context, v *domain.LegalityVerification) error
}
