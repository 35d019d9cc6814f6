package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// WorksheetService implements ports.WorksheetService.
type WorksheetService struct {
	repo   ports.WorksheetRepository
	logger zerolog.Logger
}

func NewWorksheetService(repo ports.WorksheetRepository, logger zerolog.Logger) *WorksheetService {
	return &WorksheetService{repo: repo, logger: logger}
}

func (s *WorksheetService) CreateWorksheet(ctx context.Context, input ports.CreateWorksheetInput) (*domain.Worksheet, error) {
	if input.Title == "" || input.ClientID == "" {
		return nil, fmt.Errorf("create worksheet: title and client are required")
	}
	priority := domain.CasePriority(input.Priority)
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("create worksheet: unknown priority %q", input.Priority)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	steps := make([]domain.WorksheetStep, 0, len(input.Steps))
	for _, name := range input.Steps {
		steps = append(steps, domain.WorksheetStep{Name: name})
	}

	now := time.Now().UTC()
	w := &domain.Worksheet{
		Number:        fmt.Sprintf("LK-%03d", count+1),
		Title:         input.Title,
		ClientID:      input.ClientID,
		CaseID:        input.CaseID,
		ServiceName:   input.ServiceName,
		Status:        domain.WorksheetInProgress,
		Priority:      priority,
		ResponsibleID: input.Responsible,
		Steps:         steps,
		Fee:           input.Fee,
		Notes:         input.Notes,
		Deadline:      input.Deadline,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create worksheet")
		return nil, err
	}
	s.logger.Info().Str("number", w.Number).Msg("worksheet created")
	return w, nil
}

func (s *WorksheetService) GetWorksheet(ctx context.Context, id string) (*ports.WorksheetView, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.WorksheetView{Worksheet: w, Progress: w.Progress()}, nil
}

func (s *WorksheetService) ListWorksheets(ctx context.Context, filter ports.ListWorksheetsFilter) (*ports.ListWorksheetsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]ports.WorksheetView, 0, len(items))
	for _, w := range items {
		views = append(views, ports.WorksheetView{Worksheet: w, Progress: w.Progress()})
	}
	return &ports.ListWorksheetsResult{Items: views, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *WorksheetService) UpdateWorksheet(ctx context.Context, id string, input ports.UpdateWorksheetInput) (*ports.WorksheetView, error) {
	w, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		w.Title = *input.Title
	}
	if input.Status != nil {
		w.Status = domain.WorksheetStatus(*input.Status)
	}
	if input.Priority != nil {
		p := domain.CasePriority(*input.Priority)
		if !domain.ValidPriority(p) {
			return nil, fmt.Errorf("update worksheet: unknown priority %q", *input.Priority)
		}
		w.Priority = p
	}
	if input.Notes != nil {
		w.Notes = *input.Notes
	}
	if input.Fee != nil {
		w.Fee = *input.Fee
	}
	if input.Deadline != nil {
		w.Deadline = input.Deadline
	}
	if input.Responsible != nil {
		w.ResponsibleID = *input.Responsible
	}
	if input.Steps != nil {
		w.Steps = input.Steps
	}
	w.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return &ports.WorksheetView{Worksheet: w, Progress: w.Progress()}, nil
}
