package domain

import (
	"errors"
	"time"
)

// CaseStatus represents the lifecycle state of a service case.
type CaseStatus string

const (
	StatusDraft      CaseStatus = "draft"
	StatusInProgress CaseStatus = "in_progress"
	StatusReview     CaseStatus = "review"
	StatusCompleted  CaseStatus = "completed"
	StatusCancelled  CaseStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Cancellation is permitted from any non-terminal state but is gated
// behind the cases:cancel capability at the transport layer.
var validTransitions = map[CaseStatus][]CaseStatus{
	StatusDraft:      {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusReview, StatusCancelled},
	StatusReview:     {StatusCompleted, StatusCancelled},
}

var (
	ErrCaseNotFound        = errors.New("case not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrServiceTypeNotFound = errors.New("service type not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrDuplicateReference  = errors.New("reference number already exists")
	ErrForbidden           = errors.New("access forbidden")
)

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are defined from s.
func (s CaseStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// CasePriority is the urgency level assigned to a case.
type CasePriority string

const (
	PriorityLow    CasePriority = "low"
	PriorityNormal CasePriority = "normal"
	PriorityHigh   CasePriority = "high"
	PriorityUrgent CasePriority = "urgent"
)

// ValidPriority reports whether p is one of the defined priority levels.
func ValidPriority(p CasePriority) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// FeeStatus tracks payment state of the agreed case fee.
type FeeStatus string

const (
	FeeUnpaid  FeeStatus = "unpaid"
	FeePartial FeeStatus = "partial"
	FeePaid    FeeStatus = "paid"
)

// Case is the core aggregate: one engagement of the office for a client,
// e.g. drafting a deed or a power of attorney.
type Case struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	ReferenceNumber string       `json:"reference_number" bson:"reference_number"`
	Title           string       `json:"title" bson:"title"`
	Description     string       `json:"description,omitempty" bson:"description,omitempty"`
	CategoryID      string       `json:"category_id" bson:"category_id"`
	ServiceTypeID   string       `json:"service_type_id" bson:"service_type_id"`
	ClientID        string       `json:"client_id" bson:"client_id"`
	Status          CaseStatus   `json:"status" bson:"status"`
	Priority        CasePriority `json:"priority" bson:"priority"`
	AssignedTo      string       `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	CreatedBy       string       `json:"created_by" bson:"created_by"`
	Notes           string       `json:"notes,omitempty" bson:"notes,omitempty"`

	FeeAmount float64   `json:"fee_amount,omitempty" bson:"fee_amount,omitempty"`
	FeeStatus FeeStatus `json:"fee_status" bson:"fee_status"`

	// RequiredDocuments and ReceivedDocuments hold document names; the
	// authoritative per-document records live in case_documents.
	RequiredDocuments []string `json:"required_documents" bson:"required_documents"`
	ReceivedDocuments []string `json:"received_documents" bson:"received_documents"`

	// Advisory completeness flags. They are surfaced to callers but are
	// deliberately not enforced as transition guards.
	ChecklistComplete bool `json:"document_checklist_complete" bson:"document_checklist_complete"`
	LegalityVerified  bool `json:"legality_verified" bson:"legality_verified"`

	EstimatedCompletion *time.Time `json:"estimated_completion_date,omitempty" bson:"estimated_completion_date,omitempty"`
	StartedAt           *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" bson:"updated_at"`
}

// DocumentProgress returns the checklist completion percentage, 0 when no
// documents are required.
func (c *Case) DocumentProgress() float64 {
	if len(c.RequiredDocuments) == 0 {
		return 0
	}
	return float64(len(c.ReceivedDocuments)) / float64(len(c.RequiredDocuments)) * 100
}
