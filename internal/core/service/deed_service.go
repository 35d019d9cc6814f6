package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// VerificationPassed is the status value that flips the case's advisory
// legality flag.
const VerificationPassed = "verified"

var validDeedStatuses = map[domain.DeedDraftStatus]struct{}{
	domain.DeedDraftDrafting: {},
	domain.DeedDraftReview:   {},
	domain.DeedDraftApproved: {},
	domain.DeedDraftSigned:   {},
}

// DeedService implements ports.DeedService.
type DeedService struct {
	drafts   ports.DeedDraftRepository
	legality ports.LegalityRepository
	cases    ports.CaseRepository
	timeline ports.TimelineRepository
	logger   zerolog.Logger
}

func NewDeedService(
	drafts ports.DeedDraftRepository,
	legality ports.LegalityRepository,
	cases ports.CaseRepository,
	timeline ports.TimelineRepository,
	logger zerolog.Logger,
) *DeedService {
	return &DeedService{drafts: drafts, legality: legality, cases: cases, timeline: timeline, logger: logger}
}

// CreateDraft opens the next draft version for the case.
func (s *DeedService) CreateDraft(ctx context.Context, input ports.CreateDeedDraftInput) (*domain.DeedDraft, error) {
	if _, err := s.cases.FindByReference(ctx, input.CaseID); err != nil {
		return nil, err
	}

	existing, err := s.drafts.ListByCase(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d := &domain.DeedDraft{
		CaseID:       input.CaseID,
		DeedNumber:   input.DeedNumber,
		Version:      len(existing) + 1,
		DraftContent: input.Content,
		Status:       domain.DeedDraftDrafting,
		CreatedBy:    input.CreatedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.drafts.Insert(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info().Str("reference", input.CaseID).Int("version", d.Version).Msg("deed draft created")
	return d, nil
}

func (s *DeedService) ListDrafts(ctx context.Context, caseID string) ([]*domain.DeedDraft, error) {
	return s.drafts.ListByCase(ctx, caseID)
}

// UpdateDraft applies the provided mutable fields.
func (s *DeedService) UpdateDraft(ctx context.Context, id string, input ports.UpdateDeedDraftInput) (*domain.DeedDraft, error) {
	d, err := s.drafts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		d.DraftContent = *input.Content
	}
	if input.Status != nil {
		status := domain.DeedDraftStatus(*input.Status)
		if _, ok := validDeedStatuses[status]; !ok {
			return nil, fmt.Errorf("update deed draft: unknown status %q", *input.Status)
		}
		d.Status = status
	}
	if input.DeedNumber != nil {
		d.DeedNumber = *input.DeedNumber
	}
	if input.ReviewedBy != nil {
		d.ReviewedBy = *input.ReviewedBy
	}
	if input.ApprovedBy != nil {
		d.ApprovedBy = *input.ApprovedBy
	}
	if input.SignatureScheduled != nil {
		d.SignatureScheduled = input.SignatureScheduled
	}
	if input.SignedAt != nil {
		d.SignedAt = input.SignedAt
	}
	d.UpdatedAt = time.Now().UTC()

	if err := s.drafts.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// RecordVerification stores a legality check. A passed check flips the
// case's advisory legality flag; it never gates status transitions.
func (s *DeedService) RecordVerification(ctx context.Context, input ports.RecordVerificationInput) (*domain.LegalityVerification, error) {
	c, err := s.cases.FindByReference(ctx, input.CaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	v := &domain.LegalityVerification{
		CaseID:           input.CaseID,
		VerificationType: input.VerificationType,
		Status:           input.Status,
		Details:          input.Details,
		VerifiedBy:       input.VerifiedBy,
		VerifiedAt:       &now,
		CreatedAt:        now,
	}
	if err := s.legality.Insert(ctx, v); err != nil {
		return nil, err
	}

	if input.Status == VerificationPassed && !c.LegalityVerified {
		c.LegalityVerified = true
		c.UpdatedAt = now
		if err := s.cases.Update(ctx, c); err != nil {
			s.logger.Warn().Err(err).Str("reference", input.CaseID).Msg("failed to refresh legality flag")
		}
	}

	entry := &domain.TimelineEntry{
		CaseID:      input.CaseID,
		ActionType:  domain.ActionDocumentVerified,
		Description: fmt.Sprintf("Verifikasi legalitas %q: %s", input.VerificationType, input.Status),
		PerformedBy: input.VerifiedBy,
		CreatedAt:   now,
	}
	if err := s.timeline.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("reference", input.CaseID).Msg("failed to append timeline entry")
	}

	return v, nil
}

func (s *DeedService) ListVerifications(ctx context.Context, caseID string) ([]*domain.LegalityVerification, error) {
	return s.legality.ListByCase(ctx, caseID)
}
