package ports

import (
	"context"
	"time"

	"github.com/simanis/notary-system/internal/core/domain"
)

// CreateDeedDraftInput carries the fields for a new deed draft version.
type CreateDeedDraftInput struct {
	CaseID     string
	DeedNumber string
	Content    string
	CreatedBy  string
}

// UpdateDeedDraftInput carries mutable deed draft fields; nil means
// unchanged.
type UpdateDeedDraftInput struct {
	Content            *string
	Status             *string
	DeedNumber         *string
	ReviewedBy         *string
	ApprovedBy         *string
	SignatureScheduled *time.Time
	SignedAt           *time.Time
}

// RecordVerificationInput carries one legality check result for a case.
type RecordVerificationInput struct {
	CaseID           string
	VerificationType string
	Status           string
	Details          string
	VerifiedBy       string
}

// DeedService covers deed drafting and legality verification use cases.
type DeedService interface {
	// CreateDraft opens a new draft version for the case; versions are
	// numbered sequentially starting at 1.
	CreateDraft(ctx context.Context, input CreateDeedDraftInput) (*domain.DeedDraft, error)
	ListDrafts(ctx context.Context, caseID string) ([]*domain.DeedDraft, error)
	UpdateDraft(ctx context.Context, id string, input UpdateDeedDraftInput) (*domain.DeedDraft, error)
	// RecordVerification stores a legality check and refreshes the case's
	// advisory legality flag when the check passed.
	RecordVerification(ctx context.Context, input RecordVerificationInput) (*domain.LegalityVerification, error)
	ListVerifications(ctx context.Context, caseID string) ([]*domain.LegalityVerification, error)
}
