package ports

import (
	"context"
	"time"
)

// Wizard step numbers. Forward navigation is unconditional; a step may be
// saved incomplete and revisited.
const (
	WizardStepBasicInfo = 1
	WizardStepClient    = 2
	WizardStepDocuments = 3
	WizardStepFinalize  = 4
)

// WizardBasicInfo is step 1: title, type and category of the engagement.
type WizardBasicInfo struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	ServiceTypeID string `json:"service_type_id"`
	CategoryID    string `json:"category_id"`
}

// WizardClientStep is step 2: client selection and scheduling.
type WizardClientStep struct {
	ClientID            string     `json:"client_id"`
	Priority            string     `json:"priority,omitempty"`
	FeeAmount           float64    `json:"fee_amount,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion_date,omitempty"`
}

// WizardFinalizeStep is step 4: closing notes before submission.
type WizardFinalizeStep struct {
	Notes string `json:"notes,omitempty"`
}

// WizardDraft is the accumulated state of one in-flight creation wizard.
// Drafts live in Redis with a TTL so lost connectivity does not lose
// wizard progress.
type WizardDraft struct {
	ID          string           `json:"id"`
	CreatedBy   string           `json:"created_by"`
	CurrentStep int              `json:"current_step"`
	BasicInfo   WizardBasicInfo  `json:"basic_info"`
	Client      WizardClientStep `json:"client"`
	// Checklist is the flattened document checklist derived from the
	// selected service type's template.
	Checklist map[string]bool    `json:"checklist"`
	Finalize  WizardFinalizeStep `json:"finalize"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// SaveStepInput carries one step's payload; only the field matching Step
// is read.
type SaveStepInput struct {
	Step      int
	BasicInfo *WizardBasicInfo
	Client    *WizardClientStep
	Checklist map[string]bool
	Finalize  *WizardFinalizeStep
}

// WizardService sequences the four-step case creation flow.
type WizardService interface {
	StartDraft(ctx context.Context, createdBy string) (*WizardDraft, error)
	GetDraft(ctx context.Context, draftID string) (*WizardDraft, error)
	SaveStep(ctx context.Context, draftID string, input SaveStepInput) (*WizardDraft, error)
	// Submit assembles all step data into one atomic case create and
	// discards the draft on success.
	Submit(ctx context.Context, draftID string) (*CaseResult, error)
	Discard(ctx context.Context, draftID string) error
}
