package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/api/metrics"
	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

const maxListLimit = 100

// transitionLabels maps a target status to the action description stored
// on the timeline, mirroring the labels of the office workflow buttons.
var transitionLabels = map[domain.CaseStatus]string{
	domain.StatusInProgress: "Mulai Proses",
	domain.StatusReview:     "Kirim Review",
	domain.StatusCompleted:  "Tandai Selesai",
	domain.StatusCancelled:  "Dibatalkan",
}

// CaseService implements ports.CaseService.
type CaseService struct {
	cases     ports.CaseRepository
	timeline  ports.TimelineRepository
	documents ports.DocumentRepository
	logger    zerolog.Logger
}

func NewCaseService(
	cases ports.CaseRepository,
	timeline ports.TimelineRepository,
	documents ports.DocumentRepository,
	logger zerolog.Logger,
) *CaseService {
	return &CaseService{cases: cases, timeline: timeline, documents: documents, logger: logger}
}

// CreateCase persists a new case in draft status, materializes the
// required-document checklist, and appends the creation timeline entry.
// The reference number must already be set by the caller (the wizard
// reserves it before submission).
func (s *CaseService) CreateCase(ctx context.Context, input ports.CreateCaseInput) (*ports.CaseResult, error) {
	priority := domain.CasePriority(input.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("create case: unknown priority %q", input.Priority)
	}

	ref := input.ReferenceNumber
	if ref == "" {
		ref = GenerateReferenceNumber()
	}

	now := time.Now().UTC()
	c := &domain.Case{
		ReferenceNumber:     ref,
		Title:               input.Title,
		Description:         input.Description,
		CategoryID:          input.CategoryID,
		ServiceTypeID:       input.ServiceTypeID,
		ClientID:            input.ClientID,
		Status:              domain.StatusDraft,
		Priority:            priority,
		CreatedBy:           input.CreatedBy,
		Notes:               input.Notes,
		FeeAmount:           input.FeeAmount,
		FeeStatus:           domain.FeeUnpaid,
		RequiredDocuments:   input.RequiredDocuments,
		ReceivedDocuments:   []string{},
		EstimatedCompletion: input.EstimatedCompletion,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.cases.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("reference", c.ReferenceNumber).Msg("failed to create case")
		return nil, err
	}

	if len(input.RequiredDocuments) > 0 {
		docs := make([]*domain.CaseDocument, 0, len(input.RequiredDocuments))
		for _, name := range input.RequiredDocuments {
			docs = append(docs, &domain.CaseDocument{
				CaseID:       c.ReferenceNumber,
				DocumentName: name,
				DocumentType: domain.DocumentRequired,
				CreatedAt:    now,
			})
		}
		if err := s.documents.InsertMany(ctx, docs); err != nil {
			s.logger.Warn().Err(err).Str("reference", c.ReferenceNumber).Msg("failed to materialize document checklist")
		}
	}

	s.appendTimeline(ctx, c.ReferenceNumber, domain.ActionCaseCreated,
		fmt.Sprintf("Layanan %q dibuat", c.Title), input.CreatedBy)

	metrics.CasesCreatedTotal.WithLabelValues(string(priority)).Inc()
	s.logger.Info().Str("reference", c.ReferenceNumber).Str("client_id", c.ClientID).Msg("case created")

	return &ports.CaseResult{
		ReferenceNumber: c.ReferenceNumber,
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
	}, nil
}

// GetCase returns the case with its documents and timeline.
func (s *CaseService) GetCase(ctx context.Context, referenceNumber string) (*ports.CaseDetail, error) {
	c, err := s.cases.FindByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByCase(ctx, referenceNumber)
	if err != nil {
		s.logger.Warn().Err(err).Str("reference", referenceNumber).Msg("failed to load case documents")
		docs = nil
	}
	items := make([]ports.DocumentItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, ports.DocumentItem{
			ID:           d.ID,
			DocumentName: d.DocumentName,
			DocumentType: string(d.DocumentType),
			FileURL:      d.FileURL,
			Notes:        d.Notes,
			VerifiedAt:   d.VerifiedAt,
			VerifiedBy:   d.VerifiedBy,
		})
	}

	entries, err := s.timeline.ListByCase(ctx, referenceNumber)
	if err != nil {
		s.logger.Warn().Err(err).Str("reference", referenceNumber).Msg("failed to load case timeline")
		entries = nil
	}
	tl := make([]ports.TimelineItem, 0, len(entries))
	for _, e := range entries {
		tl = append(tl, ports.TimelineItem{
			ActionType:  string(e.ActionType),
			Description: e.Description,
			PerformedBy: e.PerformedBy,
			CreatedAt:   e.CreatedAt,
		})
	}

	return &ports.CaseDetail{
		Case:             c,
		Documents:        items,
		Timeline:         tl,
		DocumentProgress: c.DocumentProgress(),
	}, nil
}

// ListCases returns a page of cases matching the filter, newest first
// unless an explicit sort is requested.
func (s *CaseService) ListCases(ctx context.Context, input ports.ListCasesInput) (*ports.ListCasesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.cases.List(ctx, ports.ListCasesFilter{
		Status:   input.Status,
		Category: input.Category,
		Priority: input.Priority,
		ClientID: input.ClientID,
		Search:   input.Search,
		SortBy:   input.SortBy,
		SortAsc:  input.SortAsc,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListCasesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateCase applies the provided mutable fields.
func (s *CaseService) UpdateCase(ctx context.Context, referenceNumber string, input ports.UpdateCaseInput) (*domain.Case, error) {
	c, err := s.cases.FindByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		c.Title = *input.Title
	}
	if input.Description != nil {
		c.Description = *input.Description
	}
	if input.Priority != nil {
		p := domain.CasePriority(*input.Priority)
		if !domain.ValidPriority(p) {
			return nil, fmt.Errorf("update case: unknown priority %q", *input.Priority)
		}
		c.Priority = p
	}
	if input.AssignedTo != nil {
		c.AssignedTo = *input.AssignedTo
	}
	if input.FeeAmount != nil {
		c.FeeAmount = *input.FeeAmount
	}
	if input.FeeStatus != nil {
		c.FeeStatus = domain.FeeStatus(*input.FeeStatus)
	}
	if input.Notes != nil {
		c.Notes = *input.Notes
	}
	if input.EstimatedCompletion != nil {
		c.EstimatedCompletion = input.EstimatedCompletion
	}
	c.UpdatedAt = time.Now().UTC()

	if err := s.cases.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Transition validates the state machine move and applies it as a
// single-field status update plus a timeline side effect. Completeness of
// documents, fees or legality is deliberately not checked: those are
// advisory flags on the case, not transition guards.
func (s *CaseService) Transition(ctx context.Context, referenceNumber string, target domain.CaseStatus, performedBy string) (*domain.Case, error) {
	c, err := s.cases.FindByReference(ctx, referenceNumber)
	if err != nil {
		return nil, err
	}

	if !c.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("transition case: %w (from %s to %s)", domain.ErrInvalidTransition, c.Status, target)
	}

	now := time.Now().UTC()
	if err := s.cases.UpdateStatus(ctx, referenceNumber, target, now); err != nil {
		return nil, fmt.Errorf("transition case: %w", err)
	}

	label := transitionLabels[target]
	s.appendTimeline(ctx, referenceNumber, domain.ActionStatusChanged,
		fmt.Sprintf("%s: status diubah dari %s menjadi %s", label, c.Status, target), performedBy)

	metrics.CaseTransitionsTotal.WithLabelValues(string(c.Status), string(target)).Inc()
	s.logger.Info().
		Str("reference", referenceNumber).
		Str("from", string(c.Status)).
		Str("to", string(target)).
		Msg("case transitioned")

	c.Status = target
	c.UpdatedAt = now
	switch target {
	case domain.StatusInProgress:
		c.StartedAt = &now
	case domain.StatusCompleted:
		c.CompletedAt = &now
	}
	return c, nil
}

// AddNote appends a note to the case timeline.
func (s *CaseService) AddNote(ctx context.Context, referenceNumber, note, performedBy string) error {
	if _, err := s.cases.FindByReference(ctx, referenceNumber); err != nil {
		return err
	}
	entry := &domain.TimelineEntry{
		CaseID:      referenceNumber,
		ActionType:  domain.ActionNoteAdded,
		Description: note,
		PerformedBy: performedBy,
		CreatedAt:   time.Now().UTC(),
	}
	return s.timeline.Append(ctx, entry)
}

// MarkDocumentReceived flips one required document to received, updates
// the case's denormalized name lists and refreshes the advisory
// checklist-complete flag.
func (s *CaseService) MarkDocumentReceived(ctx context.Context, referenceNumber, documentName, performedBy string) error {
	c, err := s.cases.FindByReference(ctx, referenceNumber)
	if err != nil {
		return err
	}

	docs, err := s.documents.ListByCase(ctx, referenceNumber)
	if err != nil {
		return err
	}
	var target *domain.CaseDocument
	for _, d := range docs {
		if d.DocumentName == documentName && d.DocumentType == domain.DocumentRequired {
			target = d
			break
		}
	}
	if target == nil {
		return domain.ErrDocumentNotFound
	}

	now := time.Now().UTC()
	target.DocumentType = domain.DocumentReceived
	target.UploadedAt = &now
	if err := s.documents.Update(ctx, target); err != nil {
		return err
	}

	for _, name := range c.ReceivedDocuments {
		if name == documentName {
			return nil // already recorded on the case
		}
	}
	c.ReceivedDocuments = append(c.ReceivedDocuments, documentName)
	c.ChecklistComplete = len(c.ReceivedDocuments) >= len(c.RequiredDocuments)
	c.UpdatedAt = now
	if err := s.cases.Update(ctx, c); err != nil {
		return err
	}
	metrics.ChecklistProgress.Observe(c.DocumentProgress())

	s.appendTimeline(ctx, referenceNumber, domain.ActionDocumentReceived,
		fmt.Sprintf("Dokumen %q diterima", documentName), performedBy)
	return nil
}

// VerifyDocument stamps a received document with verifier and time.
func (s *CaseService) VerifyDocument(ctx context.Context, documentID, verifiedBy string) error {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	doc.VerifiedAt = &now
	doc.VerifiedBy = verifiedBy
	if err := s.documents.Update(ctx, doc); err != nil {
		return err
	}
	s.appendTimeline(ctx, doc.CaseID, domain.ActionDocumentVerified,
		fmt.Sprintf("Dokumen %q diverifikasi", doc.DocumentName), verifiedBy)
	return nil
}

// Summary aggregates case counts for the dashboard.
func (s *CaseService) Summary(ctx context.Context) (*ports.DashboardSummary, error) {
	byStatus, err := s.cases.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	return &ports.DashboardSummary{ByStatus: byStatus, Total: total}, nil
}

// appendTimeline writes an audit entry; failures are logged, never fatal.
func (s *CaseService) appendTimeline(ctx context.Context, caseID string, action domain.TimelineAction, description, performedBy string) {
	entry := &domain.TimelineEntry{
		CaseID:      caseID,
		ActionType:  action,
		Description: description,
		PerformedBy: performedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.timeline.Append(ctx, entry); err != nil {
		s.logger.Warn().Err(err).Str("reference", caseID).Str("action", string(action)).Msg("failed to append timeline entry")
	}
}
