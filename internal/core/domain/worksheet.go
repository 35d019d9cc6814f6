package domain

import (
	"errors"
	"time"
)

// WorksheetStatus is the coarse progress state of a worksheet.
type WorksheetStatus string

const (
	WorksheetInProgress WorksheetStatus = "in_progress"
	WorksheetCompleted  WorksheetStatus = "completed"
	WorksheetOnHold     WorksheetStatus = "on_hold"
)

var ErrWorksheetNotFound = errors.New("worksheet not found")

// WorksheetStep is one item of a worksheet's task checklist.
type WorksheetStep struct {
	Name string `json:"name" bson:"name"`
	Done bool   `json:"done" bson:"done"`
}

// Worksheet is an internal task-tracking record for a case, with a step
// checklist and a derived progress percentage.
type Worksheet struct {
	ID            string          `json:"id" bson:"_id,omitempty"`
	Number        string          `json:"number" bson:"number"`
	Title         string          `json:"title" bson:"title"`
	ClientID      string          `json:"client_id" bson:"client_id"`
	CaseID        string          `json:"case_id,omitempty" bson:"case_id,omitempty"`
	ServiceName   string          `json:"service_name" bson:"service_name"`
	Status        WorksheetStatus `json:"status" bson:"status"`
	Priority      CasePriority    `json:"priority" bson:"priority"`
	ResponsibleID string          `json:"responsible_id,omitempty" bson:"responsible_id,omitempty"`
	Steps         []WorksheetStep `json:"steps" bson:"steps"`
	Fee           float64         `json:"fee,omitempty" bson:"fee,omitempty"`
	Notes         string          `json:"notes,omitempty" bson:"notes,omitempty"`
	Deadline      *time.Time      `json:"deadline,omitempty" bson:"deadline,omitempty"`
	CreatedAt     time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" bson:"updated_at"`
}

// Progress returns the percentage of completed steps, 0 when the
// worksheet has no steps.
func (w *Worksheet) Progress() float64 {
	if len(w.Steps) == 0 {
		return 0
	}
	done := 0
	for _, s := range w.Steps {
		if s.Done {
			done++
		}
	}
	return float64(done) / float64(len(w.Steps)) * 100
}
