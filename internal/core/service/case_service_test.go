package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/api/metrics"
	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubCaseRepo struct {
	byReference map[string]*domain.Case
	createErr   error // if set, Create returns this error
}

func newStubCaseRepo() *stubCaseRepo {
	return &stubCaseRepo{byReference: make(map[string]*domain.Case)}
}

func (r *stubCaseRepo) Create(_ context.Context, c *domain.Case) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byReference[c.ReferenceNumber]; ok {
		return domain.ErrDuplicateReference
	}
	clone := *c
	r.byReference[c.ReferenceNumber] = &clone
	return nil
}

func (r *stubCaseRepo) FindByReference(_ context.Context, ref string) (*domain.Case, error) {
	c, ok := r.byReference[ref]
	if !ok {
		return nil, domain.ErrCaseNotFound
	}
	clone := *c
	return &clone, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubCaseRepo) List(_ context.Context, f ports.ListCasesFilter) ([]*domain.Case, int64, error) {
	var matched []*domain.Case
	for _, c := range r.byReference {
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.Priority != "" && string(c.Priority) != f.Priority {
			continue
		}
		if f.ClientID != "" && c.ClientID != f.ClientID {
			continue
		}
		if f.Search != "" {
			titleMatch := strings.Contains(strings.ToLower(c.Title), strings.ToLower(f.Search))
			refMatch := strings.Contains(strings.ToLower(c.ReferenceNumber), strings.ToLower(f.Search))
			if !titleMatch && !refMatch {
				continue
			}
		}
		clone := *c
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubCaseRepo) Update(_ context.Context, c *domain.Case) error {
	if _, ok := r.byReference[c.ReferenceNumber]; !ok {
		return domain.ErrCaseNotFound
	}
	clone := *c
	r.byReference[c.ReferenceNumber] = &clone
	return nil
}

func (r *stubCaseRepo) UpdateStatus(_ context.Context, ref string, status domain.CaseStatus, ts time.Time) error {
	c, ok := r.byReference[ref]
	if !ok {
		return domain.ErrCaseNotFound
	}
	c.Status = status
	c.UpdatedAt = ts
	switch status {
	case domain.StatusInProgress:
		c.StartedAt = &ts
	case domain.StatusCompleted:
		c.CompletedAt = &ts
	}
	return nil
}

func (r *stubCaseRepo) CountByStatus(_ context.Context) (map[domain.CaseStatus]int64, error) {
	counts := make(map[domain.CaseStatus]int64)
	for _, c := range r.byReference {
		counts[c.Status]++
	}
	return counts, nil
}

type stubTimelineRepo struct {
	entries []*domain.TimelineEntry
}

func (r *stubTimelineRepo) Append(_ context.Context, e *domain.TimelineEntry) error {
	clone := *e
	r.entries = append(r.entries, &clone)
	return nil
}

func (r *stubTimelineRepo) ListByCase(_ context.Context, caseID string) ([]*domain.TimelineEntry, error) {
	var out []*domain.TimelineEntry
	for _, e := range r.entries {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubDocumentRepo struct {
	byID   map[string]*domain.CaseDocument
	nextID int
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{byID: make(map[string]*domain.CaseDocument)}
}

func (r *stubDocumentRepo) Insert(_ context.Context, d *domain.CaseDocument) error {
	r.nextID++
	if d.ID == "" {
		d.ID = strings.Repeat("d", r.nextID)
	}
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDocumentRepo) InsertMany(ctx context.Context, docs []*domain.CaseDocument) error {
	for _, d := range docs {
		if err := r.Insert(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubDocumentRepo) ListByCase(_ context.Context, caseID string) ([]*domain.CaseDocument, error) {
	var out []*domain.CaseDocument
	for _, d := range r.byID {
		if d.CaseID == caseID {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.CaseDocument, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDocumentRepo) Update(_ context.Context, d *domain.CaseDocument) error {
	if _, ok := r.byID[d.ID]; !ok {
		return domain.ErrDocumentNotFound
	}
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func newCaseServiceForTest() (*CaseService, *stubCaseRepo, *stubTimelineRepo, *stubDocumentRepo) {
	cases := newStubCaseRepo()
	timeline := &stubTimelineRepo{}
	documents := newStubDocumentRepo()
	svc := NewCaseService(cases, timeline, documents, zerolog.Nop())
	return svc, cases, timeline, documents
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreateCase(t *testing.T) {
	svc, cases, timeline, documents := newCaseServiceForTest()
	ctx := context.Background()

	result, err := svc.CreateCase(ctx, ports.CreateCaseInput{
		Title:             "Akta Jual Beli Tanah",
		ClientID:          "c1",
		ServiceTypeID:     "st-jual-beli",
		CategoryID:        "cat-ppat",
		RequiredDocuments: []string{"Sertifikat Tanah", "KTP Penjual"},
		CreatedBy:         "dewi",
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}
	if result.Status != string(domain.StatusDraft) {
		t.Errorf("status = %s, want draft", result.Status)
	}
	if !strings.HasPrefix(result.ReferenceNumber, "SRV-") {
		t.Errorf("reference = %q, want SRV- prefix", result.ReferenceNumber)
	}

	stored := cases.byReference[result.ReferenceNumber]
	if stored == nil {
		t.Fatal("case not persisted")
	}
	if stored.Priority != domain.PriorityNormal {
		t.Errorf("priority = %s, want normal default", stored.Priority)
	}
	if stored.FeeStatus != domain.FeeUnpaid {
		t.Errorf("fee status = %s, want unpaid", stored.FeeStatus)
	}

	docs, _ := documents.ListByCase(ctx, result.ReferenceNumber)
	if len(docs) != 2 {
		t.Errorf("materialized %d checklist documents, want 2", len(docs))
	}
	if len(timeline.entries) != 1 || timeline.entries[0].ActionType != domain.ActionCaseCreated {
		t.Errorf("expected one service_created timeline entry, got %v", timeline.entries)
	}
}

func TestCreateCaseRejectsUnknownPriority(t *testing.T) {
	svc, _, _, _ := newCaseServiceForTest()

	_, err := svc.CreateCase(context.Background(), ports.CreateCaseInput{
		Title:         "Akta",
		ClientID:      "c1",
		ServiceTypeID: "st1",
		CategoryID:    "k1",
		Priority:      "asap",
	})
	if err == nil {
		t.Fatal("expected error for unknown priority")
	}
}

func TestTransitionForwardPath(t *testing.T) {
	svc, _, timeline, _ := newCaseServiceForTest()
	ctx := context.Background()

	result, err := svc.CreateCase(ctx, ports.CreateCaseInput{
		Title: "Akta Pendirian PT", ClientID: "c1", ServiceTypeID: "st1", CategoryID: "k1",
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}
	ref := result.ReferenceNumber

	for _, target := range []domain.CaseStatus{domain.StatusInProgress, domain.StatusReview, domain.StatusCompleted} {
		updated, err := svc.Transition(ctx, ref, target, "dewi")
		if err != nil {
			t.Fatalf("Transition to %s: %v", target, err)
		}
		if updated.Status != target {
			t.Fatalf("status = %s, want %s", updated.Status, target)
		}
	}

	// creation + three transitions
	if len(timeline.entries) != 4 {
		t.Errorf("timeline has %d entries, want 4", len(timeline.entries))
	}
	last := timeline.entries[len(timeline.entries)-1]
	if last.ActionType != domain.ActionStatusChanged || last.PerformedBy != "dewi" {
		t.Errorf("unexpected last timeline entry: %+v", last)
	}
}

func TestTransitionRejectsShortcut(t *testing.T) {
	svc, _, _, _ := newCaseServiceForTest()
	ctx := context.Background()

	result, _ := svc.CreateCase(ctx, ports.CreateCaseInput{
		Title: "Surat Kuasa", ClientID: "c1", ServiceTypeID: "st1", CategoryID: "k1",
	})

	_, err := svc.Transition(ctx, result.ReferenceNumber, domain.StatusCompleted, "dewi")
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestTransitionFromTerminalState(t *testing.T) {
	svc, _, _, _ := newCaseServiceForTest()
	ctx := context.Background()

	result, _ := svc.CreateCase(ctx, ports.CreateCaseInput{
		Title: "Akta", ClientID: "c1", ServiceTypeID: "st1", CategoryID: "k1",
	})
	ref := result.ReferenceNumber

	if _, err := svc.Transition(ctx, ref, domain.StatusCancelled, "admin"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := svc.Transition(ctx, ref, domain.StatusInProgress, "admin"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition from cancelled", err)
	}
}

// checklistSampleCount reads the current observation count of the
// checklist progress histogram.
func checklistSampleCount(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	if err := metrics.ChecklistProgress.Write(&m); err != nil {
		t.Fatalf("read checklist histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMarkDocumentReceivedRefreshesAdvisoryFlag(t *testing.T) {
	svc, cases, _, _ := newCaseServiceForTest()
	ctx := context.Background()
	observed := checklistSampleCount(t)

	result, _ := svc.CreateCase(ctx, ports.CreateCaseInput{
		Title: "Akta Jual Beli", ClientID: "c1", ServiceTypeID: "st1", CategoryID: "k1",
		RequiredDocuments: []string{"Sertifikat Tanah", "KTP Penjual"},
	})
	ref := result.ReferenceNumber

	if err := svc.MarkDocumentReceived(ctx, ref, "Sertifikat Tanah", "dewi"); err != nil {
		t.Fatalf("MarkDocumentReceived: %v", err)
	}
	if cases.byReference[ref].ChecklistComplete {
		t.Error("checklist should not be complete after 1 of 2 documents")
	}

	if err := svc.MarkDocumentReceived(ctx, ref, "KTP Penjual", "dewi"); err != nil {
		t.Fatalf("MarkDocumentReceived: %v", err)
	}
	if !cases.byReference[ref].ChecklistComplete {
		t.Error("checklist should be complete after all documents received")
	}
	if got := checklistSampleCount(t) - observed; got != 2 {
		t.Errorf("checklist progress observations = %d, want 2", got)
	}

	// an incomplete checklist never blocks transitions
	if _, err := svc.Transition(ctx, ref, domain.StatusInProgress, "dewi"); err != nil {
		t.Errorf("transition with complete checklist: %v", err)
	}
}

func TestMarkDocumentReceivedUnknownName(t *testing.T) {
	svc, _, _, _ := newCaseServiceForTest()
	ctx := context.Background()

	result, _ := svc.CreateCase(ctx, ports.CreateCaseInput{
		Title: "Akta", ClientID: "c1", ServiceTypeID: "st1", CategoryID: "k1",
		RequiredDocuments: []string{"KTP"},
	})

	err := svc.MarkDocumentReceived(ctx, result.ReferenceNumber, "Paspor", "dewi")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestSummary(t *testing.T) {
	svc, _, _, _ := newCaseServiceForTest()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateCase(ctx, ports.CreateCaseInput{
			Title: "Akta", ClientID: "c1", ServiceTypeID: "st1", CategoryID: "k1",
		}); err != nil {
			t.Fatalf("CreateCase: %v", err)
		}
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("total = %d, want 3", summary.Total)
	}
	if summary.ByStatus[domain.StatusDraft] != 3 {
		t.Errorf("draft count = %d, want 3", summary.ByStatus[domain.StatusDraft])
	}
}
