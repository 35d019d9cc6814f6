package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/api/metrics"
	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

const (
	draftTTL          = 24 * time.Hour
	reserveAttempts   = 3
	wizardRequiredMsg = "title, client_id, service_type_id and category_id are required"
)

var (
	ErrDraftNotFound    = errors.New("wizard draft not found")
	ErrIncompleteWizard = errors.New("wizard draft incomplete: " + wizardRequiredMsg)
	ErrReferenceExhaust = errors.New("could not reserve a unique reference number")
)

// DraftStore abstracts the wizard draft persistence (Redis).
type DraftStore interface {
	Save(ctx context.Context, draft *ports.WizardDraft, ttl time.Duration) error
	Get(ctx context.Context, draftID string) (*ports.WizardDraft, error)
	Delete(ctx context.Context, draftID string) error
}

// ReferenceReserver reserves generated reference numbers so two
// concurrent submissions cannot pick the same one.
type ReferenceReserver interface {
	// Reserve returns false when the reference was already taken.
	Reserve(ctx context.Context, referenceNumber string) (bool, error)
}

type wizardService struct {
	drafts       DraftStore
	reserver     ReferenceReserver
	serviceTypes ports.ServiceTypeRepository
	clients      ports.ClientRepository
	cases        ports.CaseService
	log          zerolog.Logger
}

// NewWizardService returns a WizardService implementation.
func NewWizardService(
	drafts DraftStore,
	reserver ReferenceReserver,
	serviceTypes ports.ServiceTypeRepository,
	clients ports.ClientRepository,
	cases ports.CaseService,
	log zerolog.Logger,
) ports.WizardService {
	return &wizardService{
		drafts:       drafts,
		reserver:     reserver,
		serviceTypes: serviceTypes,
		clients:      clients,
		cases:        cases,
		log:          log,
	}
}

// StartDraft opens a fresh wizard draft at step 1.
func (s *wizardService) StartDraft(ctx context.Context, createdBy string) (*ports.WizardDraft, error) {
	now := time.Now().UTC()
	draft := &ports.WizardDraft{
		ID:          uuid.NewString(),
		CreatedBy:   createdBy,
		CurrentStep: ports.WizardStepBasicInfo,
		Checklist:   map[string]bool{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.drafts.Save(ctx, draft, draftTTL); err != nil {
		return nil, fmt.Errorf("start draft: %w", err)
	}
	return draft, nil
}

func (s *wizardService) GetDraft(ctx context.Context, draftID string) (*ports.WizardDraft, error) {
	return s.drafts.Get(ctx, draftID)
}

// SaveStep stores one step's payload. Steps may be saved incomplete and
// revisited; forward navigation is never gated on earlier steps.
func (s *wizardService) SaveStep(ctx context.Context, draftID string, input ports.SaveStepInput) (*ports.WizardDraft, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	switch input.Step {
	case ports.WizardStepBasicInfo:
		if input.BasicInfo != nil {
			previousType := draft.BasicInfo.ServiceTypeID
			draft.BasicInfo = *input.BasicInfo
			if draft.BasicInfo.ServiceTypeID != "" && draft.BasicInfo.ServiceTypeID != previousType {
				if err := s.rebuildChecklist(ctx, draft); err != nil {
					return nil, err
				}
			}
		}
	case ports.WizardStepClient:
		if input.Client != nil {
			if input.Client.ClientID != "" {
				if _, err := s.clients.FindByID(ctx, input.Client.ClientID); err != nil {
					return nil, err
				}
			}
			draft.Client = *input.Client
		}
	case ports.WizardStepDocuments:
		if input.Checklist != nil {
			// Only known checklist entries may be toggled.
			for name, received := range input.Checklist {
				if _, ok := draft.Checklist[name]; ok {
					draft.Checklist[name] = received
				}
			}
		}
	case ports.WizardStepFinalize:
		if input.Finalize != nil {
			draft.Finalize = *input.Finalize
		}
	default:
		return nil, fmt.Errorf("save step: unknown step %d", input.Step)
	}

	if input.Step > draft.CurrentStep {
		draft.CurrentStep = input.Step
	}
	draft.UpdatedAt = time.Now().UTC()

	if err := s.drafts.Save(ctx, draft, draftTTL); err != nil {
		return nil, fmt.Errorf("save step: %w", err)
	}
	return draft, nil
}

// rebuildChecklist derives the document checklist from the selected
// service type's template, dropping any toggles from a prior selection.
func (s *wizardService) rebuildChecklist(ctx context.Context, draft *ports.WizardDraft) error {
	st, err := s.serviceTypes.FindByID(ctx, draft.BasicInfo.ServiceTypeID)
	if err != nil {
		return err
	}
	draft.Checklist = st.DocumentTemplate.Flatten()
	return nil
}

// Submit assembles all step data into one atomic case create. The
// reference number is reserved before the create call and retried on
// collision; the store's unique index is the final guard.
func (s *wizardService) Submit(ctx context.Context, draftID string) (*ports.CaseResult, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.BasicInfo.Title == "" || draft.Client.ClientID == "" ||
		draft.BasicInfo.ServiceTypeID == "" || draft.BasicInfo.CategoryID == "" {
		return nil, ErrIncompleteWizard
	}

	required := make([]string, 0, len(draft.Checklist))
	for name := range draft.Checklist {
		required = append(required, name)
	}

	var result *ports.CaseResult
	for attempt := 0; attempt < reserveAttempts; attempt++ {
		ref := GenerateReferenceNumber()
		ok, err := s.reserver.Reserve(ctx, ref)
		if err != nil {
			s.log.Warn().Err(err).Msg("reference reservation check failed, proceeding with unique index only")
		} else if !ok {
			continue
		}

		result, err = s.cases.CreateCase(ctx, ports.CreateCaseInput{
			ReferenceNumber:     ref,
			Title:               draft.BasicInfo.Title,
			Description:         draft.BasicInfo.Description,
			ClientID:            draft.Client.ClientID,
			ServiceTypeID:       draft.BasicInfo.ServiceTypeID,
			CategoryID:          draft.BasicInfo.CategoryID,
			Priority:            draft.Client.Priority,
			FeeAmount:           draft.Client.FeeAmount,
			Notes:               draft.Finalize.Notes,
			EstimatedCompletion: draft.Client.EstimatedCompletion,
			RequiredDocuments:   required,
			CreatedBy:           draft.CreatedBy,
		})
		if errors.Is(err, domain.ErrDuplicateReference) {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}
	if result == nil {
		return nil, ErrReferenceExhaust
	}

	if err := s.drafts.Delete(ctx, draftID); err != nil {
		s.log.Warn().Err(err).Str("draft_id", draftID).Msg("failed to delete submitted draft")
	}

	metrics.WizardSubmissionsTotal.Inc()
	s.log.Info().Str("draft_id", draftID).Str("reference", result.ReferenceNumber).Msg("wizard submitted")
	return result, nil
}

// Discard drops an in-flight draft.
func (s *wizardService) Discard(ctx context.Context, draftID string) error {
	return s.drafts.Delete(ctx, draftID)
}
