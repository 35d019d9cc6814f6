package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

type stubWorksheetRepo struct {
	byID   map[string]*domain.Worksheet
	nextID int
}

func newStubWorksheetRepo() *stubWorksheetRepo {
	return &stubWorksheetRepo{byID: make(map[string]*domain.Worksheet)}
}

func (r *stubWorksheetRepo) Create(_ context.Context, w *domain.Worksheet) error {
	r.nextID++
	w.ID = fmt.Sprintf("ws-%d", r.nextID)
	clone := *w
	r.byID[w.ID] = &clone
	return nil
}

func (r *stubWorksheetRepo) FindByID(_ context.Context, id string) (*domain.Worksheet, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrWorksheetNotFound
	}
	clone := *w
	return &clone, nil
}

func (r *stubWorksheetRepo) List(_ context.Context, _ ports.ListWorksheetsFilter) ([]*domain.Worksheet, int64, error) {
	out := make([]*domain.Worksheet, 0, len(r.byID))
	for _, w := range r.byID {
		clone := *w
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubWorksheetRepo) Update(_ context.Context, w *domain.Worksheet) error {
	if _, ok := r.byID[w.ID]; !ok {
		return domain.ErrWorksheetNotFound
	}
	clone := *w
	r.byID[w.ID] = &clone
	return nil
}

func (r *stubWorksheetRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func newWorksheetServiceForTest() (*WorksheetService, *stubWorksheetRepo) {
	repo := newStubWorksheetRepo()
	return NewWorksheetService(repo, zerolog.Nop()), repo
}

func TestCreateWorksheetNumbering(t *testing.T) {
	svc, _ := newWorksheetServiceForTest()
	ctx := context.Background()

	first, err := svc.CreateWorksheet(ctx, ports.CreateWorksheetInput{
		Title:    "Balik Nama Sertifikat",
		ClientID: "c1",
		Steps:    []string{"Pengecekan Sertifikat", "Pembayaran Pajak"},
	})
	if err != nil {
		t.Fatalf("CreateWorksheet: %v", err)
	}
	if first.Number != "LK-001" {
		t.Errorf("number = %q, want LK-001", first.Number)
	}
	if first.Status != domain.WorksheetInProgress {
		t.Errorf("status = %s, want in_progress", first.Status)
	}
	if first.Priority != domain.PriorityNormal {
		t.Errorf("priority = %s, want normal default", first.Priority)
	}
	if len(first.Steps) != 2 || first.Steps[0].Done {
		t.Errorf("steps not initialized from names: %+v", first.Steps)
	}

	second, err := svc.CreateWorksheet(ctx, ports.CreateWorksheetInput{
		Title: "Akta Kuasa", ClientID: "c2",
	})
	if err != nil {
		t.Fatalf("CreateWorksheet: %v", err)
	}
	if second.Number != "LK-002" {
		t.Errorf("number = %q, want LK-002", second.Number)
	}
}

func TestCreateWorksheetValidation(t *testing.T) {
	svc, _ := newWorksheetServiceForTest()
	ctx := context.Background()

	if _, err := svc.CreateWorksheet(ctx, ports.CreateWorksheetInput{ClientID: "c1"}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.CreateWorksheet(ctx, ports.CreateWorksheetInput{
		Title: "X", ClientID: "c1", Priority: "mendesak",
	}); err == nil {
		t.Error("expected error for unknown priority")
	}
}

func TestWorksheetProgress(t *testing.T) {
	svc, _ := newWorksheetServiceForTest()
	ctx := context.Background()

	w, err := svc.CreateWorksheet(ctx, ports.CreateWorksheetInput{
		Title:    "Balik Nama",
		ClientID: "c1",
		Steps:    []string{"Cek", "Bayar", "Daftar", "Serah Terima"},
	})
	if err != nil {
		t.Fatalf("CreateWorksheet: %v", err)
	}

	view, err := svc.GetWorksheet(ctx, w.ID)
	if err != nil {
		t.Fatalf("GetWorksheet: %v", err)
	}
	if view.Progress != 0 {
		t.Errorf("progress = %v, want 0", view.Progress)
	}

	view, err = svc.UpdateWorksheet(ctx, w.ID, ports.UpdateWorksheetInput{
		Steps: []domain.WorksheetStep{
			{Name: "Cek", Done: true},
			{Name: "Bayar", Done: true},
			{Name: "Daftar", Done: false},
			{Name: "Serah Terima", Done: false},
		},
	})
	if err != nil {
		t.Fatalf("UpdateWorksheet: %v", err)
	}
	if view.Progress != 50 {
		t.Errorf("progress = %v, want 50", view.Progress)
	}
}

func TestUpdateWorksheetNotFound(t *testing.T) {
	svc, _ := newWorksheetServiceForTest()

	title := "Baru"
	_, err := svc.UpdateWorksheet(context.Background(), "missing", ports.UpdateWorksheetInput{Title: &title})
	if !errors.Is(err, domain.ErrWorksheetNotFound) {
		t.Fatalf("err = %v, want ErrWorksheetNotFound", err)
	}
}
