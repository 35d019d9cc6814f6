package ports

import (
	"context"
	"time"

	"github.com/simanis/notary-system/internal/core/domain"
)

// ListWorksheetsFilter carries query parameters for the worksheet list.
type ListWorksheetsFilter struct {
	Status   string
	Priority string
	Search   string // partial match on title, number or client name
	Page     int
	Limit    int
}

// WorksheetRepository defines persistence operations for worksheets.
type WorksheetRepository interface {
	Create(ctx context.Context, w *domain.Worksheet) error
	FindByID(ctx context.Context, id string) (*domain.Worksheet, error)
	List(ctx context.Context, filter ListWorksheetsFilter) ([]*domain.Worksheet, int64, error)
	Update(ctx context.Context, w *domain.Worksheet) error
	// Count returns the total number of worksheets, used for numbering.
	Count(ctx context.Context) (int64, error)
}

// CreateWorksheetInput carries the fields for a new worksheet.
type CreateWorksheetInput struct {
	Title       string
	ClientID    string
	CaseID      string
	ServiceName string
	Priority    string
	Steps       []string
	Fee         float64
	Notes       string
	Deadline    *time.Time
	Responsible string
}

// UpdateWorksheetInput carries mutable worksheet fields; nil means
// unchanged. Steps replaces the whole checklist when non-nil.
type UpdateWorksheetInput struct {
	Title       *string
	Status      *string
	Priority    *string
	Notes       *string
	Fee         *float64
	Deadline    *time.Time
	Responsible *string
	Steps       []domain.WorksheetStep
}

// WorksheetView is a worksheet plus its derived progress percentage.
type WorksheetView struct {
	Worksheet *domain.Worksheet
	Progress  float64
}

// ListWorksheetsResult is returned by ListWorksheets.
type ListWorksheetsResult struct {
	Items []WorksheetView
	Total int64
	Page  int
	Limit int
}

// WorksheetService defines worksheet use cases.
type WorksheetService interface {
	CreateWorksheet(ctx context.Context, input CreateWorksheetInput) (*domain.Worksheet, error)
	GetWorksheet(ctx context.Context, id string) (*WorksheetView, error)
	ListWorksheets(ctx context.Context, filter ListWorksheetsFilter) (*ListWorksheetsResult, error)
	UpdateWorksheet(ctx context.Context, id string, input UpdateWorksheetInput) (*WorksheetView, error)
}
