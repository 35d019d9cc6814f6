package ports

import (
	"context"
	"time"

	"github.com/simanis/notary-system/internal/core/domain"
)

// CreateCaseInput carries all data needed to create a new case. It is
// produced either by the wizard on submission or by a direct create call.
type CreateCaseInput struct {
	// ReferenceNumber is set by the wizard after reserving the number;
	// when empty the case service generates one.
	ReferenceNumber     string
	Title               string
	Description         string
	ClientID            string
	ServiceTypeID       string
	CategoryID          string
	Priority            string
	FeeAmount           float64
	Notes               string
	EstimatedCompletion *time.Time
	RequiredDocuments   []string
	CreatedBy           string
}

// UpdateCaseInput carries the mutable case fields. Nil pointers mean
// "leave unchanged".
type UpdateCaseInput struct {
	Title               *string
	Description         *string
	Priority            *string
	AssignedTo          *string
	FeeAmount           *float64
	FeeStatus           *string
	Notes               *string
	EstimatedCompletion *time.Time
	UpdatedBy           string
}

// CaseResult is returned after creating a case.
type CaseResult struct {
	ReferenceNumber string
	Status          string
	CreatedAt       time.Time
}

// TimelineItem is a single entry in a case's activity timeline.
type TimelineItem struct {
	ActionType  string
	Description string
	PerformedBy string
	CreatedAt   time.Time
}

// DocumentItem is a single entry in a case's document checklist view.
type DocumentItem struct {
	ID           string
	DocumentName string
	DocumentType string
	FileURL      string
	Notes        string
	VerifiedAt   *time.Time
	VerifiedBy   string
}

// CaseDetail is the full case view returned by GetCase.
type CaseDetail struct {
	Case             *domain.Case
	Documents        []DocumentItem
	Timeline         []TimelineItem
	DocumentProgress float64
}

// ListCasesInput carries all parameters for the list endpoint.
type ListCasesInput struct {
	Status   string
	Category string
	Priority string
	ClientID string
	Search   string
	SortBy   string
	SortAsc  bool
	Page     int
	Limit    int
}

// ListCasesResult is returned by ListCases.
type ListCasesResult struct {
	Items      []*domain.Case
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DashboardSummary aggregates case counts for the home view.
type DashboardSummary struct {
	ByStatus map[domain.CaseStatus]int64
	Total    int64
}

// CaseService defines use-case operations for cases.
type CaseService interface {
	CreateCase(ctx context.Context, input CreateCaseInput) (*CaseResult, error)
	GetCase(ctx context.Context, referenceNumber string) (*CaseDetail, error)
	ListCases(ctx context.Context, input ListCasesInput) (*ListCasesResult, error)
	UpdateCase(ctx context.Context, referenceNumber string, input UpdateCaseInput) (*domain.Case, error)
	// Transition moves the case to the target status, appending a
	// status_changed timeline entry naming the performer.
	Transition(ctx context.Context, referenceNumber string, target domain.CaseStatus, performedBy string) (*domain.Case, error)
	// AddNote appends a note_added timeline entry.
	AddNote(ctx context.Context, referenceNumber, note, performedBy string) error
	// MarkDocumentReceived flips a required document to received and
	// refreshes the advisory checklist flag.
	MarkDocumentReceived(ctx context.Context, referenceNumber, documentName, performedBy string) error
	// VerifyDocument records a verification timestamp and verifier on a
	// received document.
	VerifyDocument(ctx context.Context, documentID, verifiedBy string) error
	Summary(ctx context.Context) (*DashboardSummary, error)
}
