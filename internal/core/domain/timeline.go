package domain

import "time"

// TimelineAction classifies a timeline entry.
type TimelineAction string

const (
	ActionCaseCreated      TimelineAction = "service_created"
	ActionStatusChanged    TimelineAction = "status_changed"
	ActionNoteAdded        TimelineAction = "note_added"
	ActionDocumentReceived TimelineAction = "document_received"
	ActionDocumentVerified TimelineAction = "document_verified"
)

// TimelineEntry is one append-only audit record on a case. Entries are
// never mutated or deleted.
type TimelineEntry struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	CaseID      string         `json:"case_id" bson:"case_id"`
	ActionType  TimelineAction `json:"action_type" bson:"action_type"`
	Description string         `json:"description" bson:"description"`
	PerformedBy string         `json:"performed_by" bson:"performed_by"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
}
