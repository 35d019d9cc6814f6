package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs for the wizard's collaborators
// ---------------------------------------------------------------------------

type stubDraftStore struct {
	drafts map[string]*ports.WizardDraft
}

func newStubDraftStore() *stubDraftStore {
	return &stubDraftStore{drafts: make(map[string]*ports.WizardDraft)}
}

func (s *stubDraftStore) Save(_ context.Context, draft *ports.WizardDraft, _ time.Duration) error {
	clone := *draft
	s.drafts[draft.ID] = &clone
	return nil
}

func (s *stubDraftStore) Get(_ context.Context, draftID string) (*ports.WizardDraft, error) {
	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	clone := *d
	return &clone, nil
}

func (s *stubDraftStore) Delete(_ context.Context, draftID string) error {
	delete(s.drafts, draftID)
	return nil
}

type stubReserver struct {
	reserved map[string]bool
	refuse   int // number of leading Reserve calls answered "taken"
	calls    int
}

func newStubReserver() *stubReserver {
	return &stubReserver{reserved: make(map[string]bool)}
}

func (r *stubReserver) Reserve(_ context.Context, ref string) (bool, error) {
	r.calls++
	if r.refuse > 0 {
		r.refuse--
		return false, nil
	}
	if r.reserved[ref] {
		return false, nil
	}
	r.reserved[ref] = true
	return true, nil
}

type stubServiceTypeRepo struct {
	byID map[string]*domain.ServiceType
}

func (r *stubServiceTypeRepo) FindByID(_ context.Context, id string) (*domain.ServiceType, error) {
	st, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceTypeNotFound
	}
	return st, nil
}

func (r *stubServiceTypeRepo) List(_ context.Context, _ string) ([]*domain.ServiceType, error) {
	var out []*domain.ServiceType
	for _, st := range r.byID {
		out = append(out, st)
	}
	return out, nil
}

func newWizardForTest(t *testing.T) (ports.WizardService, *stubDraftStore, *stubReserver, *stubCaseRepo) {
	t.Helper()

	drafts := newStubDraftStore()
	reserver := newStubReserver()
	serviceTypes := &stubServiceTypeRepo{byID: map[string]*domain.ServiceType{
		"st-jual-beli": {
			ID:   "st-jual-beli",
			Name: "Akta Jual Beli",
			DocumentTemplate: domain.DocumentTemplate{
				"penjual": {"Sertifikat Tanah", "KTP Penjual"},
				"pembeli": {"KTP Pembeli"},
			},
			IsActive: true,
		},
	}}
	clients := newStubClientRepo()
	clients.byID["c1"] = &domain.Client{
		ID: "c1", ClientType: domain.ClientIndividual, FullName: "Budi Santoso",
	}

	cases := newStubCaseRepo()
	caseService := NewCaseService(cases, &stubTimelineRepo{}, newStubDocumentRepo(), zerolog.Nop())

	svc := NewWizardService(drafts, reserver, serviceTypes, clients, caseService, zerolog.Nop())
	return svc, drafts, reserver, cases
}

func runWizardToFinalize(t *testing.T, svc ports.WizardService) string {
	t.Helper()
	ctx := context.Background()

	draft, err := svc.StartDraft(ctx, "dewi")
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}

	if _, err := svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step: ports.WizardStepBasicInfo,
		BasicInfo: &ports.WizardBasicInfo{
			Title:         "Akta Jual Beli Tanah",
			ServiceTypeID: "st-jual-beli",
			CategoryID:    "cat-ppat",
		},
	}); err != nil {
		t.Fatalf("SaveStep 1: %v", err)
	}

	if _, err := svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step:   ports.WizardStepClient,
		Client: &ports.WizardClientStep{ClientID: "c1", Priority: "high"},
	}); err != nil {
		t.Fatalf("SaveStep 2: %v", err)
	}

	if _, err := svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step:      ports.WizardStepDocuments,
		Checklist: map[string]bool{"Sertifikat Tanah": true},
	}); err != nil {
		t.Fatalf("SaveStep 3: %v", err)
	}

	if _, err := svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step:     ports.WizardStepFinalize,
		Finalize: &ports.WizardFinalizeStep{Notes: "segera diproses"},
	}); err != nil {
		t.Fatalf("SaveStep 4: %v", err)
	}

	return draft.ID
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestWizardChecklistDerivedFromTemplate(t *testing.T) {
	svc, drafts, _, _ := newWizardForTest(t)
	ctx := context.Background()

	draft, _ := svc.StartDraft(ctx, "dewi")
	updated, err := svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step: ports.WizardStepBasicInfo,
		BasicInfo: &ports.WizardBasicInfo{
			Title:         "Akta Jual Beli",
			ServiceTypeID: "st-jual-beli",
			CategoryID:    "cat-ppat",
		},
	})
	if err != nil {
		t.Fatalf("SaveStep: %v", err)
	}

	if len(updated.Checklist) != 3 {
		t.Fatalf("checklist has %d entries, want 3 flattened from the template", len(updated.Checklist))
	}
	for name, received := range updated.Checklist {
		if received {
			t.Errorf("checklist entry %q should start unchecked", name)
		}
	}

	// toggling an unknown document name is ignored
	updated, err = svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step:      ports.WizardStepDocuments,
		Checklist: map[string]bool{"Sertifikat Tanah": true, "Dokumen Asing": true},
	})
	if err != nil {
		t.Fatalf("SaveStep 3: %v", err)
	}
	if !updated.Checklist["Sertifikat Tanah"] {
		t.Error("known checklist entry should be toggled")
	}
	if _, ok := updated.Checklist["Dokumen Asing"]; ok {
		t.Error("unknown checklist entry should not be added")
	}

	stored := drafts.drafts[draft.ID]
	if stored.CurrentStep != ports.WizardStepDocuments {
		t.Errorf("current step = %d, want %d", stored.CurrentStep, ports.WizardStepDocuments)
	}
}

func TestWizardStepRejectsUnknownClient(t *testing.T) {
	svc, _, _, _ := newWizardForTest(t)
	ctx := context.Background()

	draft, _ := svc.StartDraft(ctx, "dewi")
	_, err := svc.SaveStep(ctx, draft.ID, ports.SaveStepInput{
		Step:   ports.WizardStepClient,
		Client: &ports.WizardClientStep{ClientID: "missing"},
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("err = %v, want ErrClientNotFound", err)
	}
}

func TestWizardSubmit(t *testing.T) {
	svc, drafts, _, cases := newWizardForTest(t)
	ctx := context.Background()

	draftID := runWizardToFinalize(t, svc)

	result, err := svc.Submit(ctx, draftID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	refPattern := regexp.MustCompile(`^SRV-\d+-[A-Z0-9]{5}$`)
	if !refPattern.MatchString(result.ReferenceNumber) {
		t.Errorf("reference %q does not match expected format", result.ReferenceNumber)
	}
	if result.Status != string(domain.StatusDraft) {
		t.Errorf("status = %s, want draft", result.Status)
	}

	created := cases.byReference[result.ReferenceNumber]
	if created == nil {
		t.Fatal("case not created")
	}
	if created.ClientID != "c1" || created.Priority != domain.PriorityHigh {
		t.Errorf("unexpected case fields: %+v", created)
	}
	if created.Notes != "segera diproses" {
		t.Errorf("notes = %q, want finalize notes", created.Notes)
	}
	if len(created.RequiredDocuments) != 3 {
		t.Errorf("required documents = %d, want 3 from checklist", len(created.RequiredDocuments))
	}

	if _, ok := drafts.drafts[draftID]; ok {
		t.Error("draft should be deleted after submission")
	}
}

func TestWizardSubmitRetriesReservationCollision(t *testing.T) {
	svc, _, reserver, cases := newWizardForTest(t)
	ctx := context.Background()

	draftID := runWizardToFinalize(t, svc)

	// Two generated references already taken; the third attempt wins.
	reserver.refuse = 2

	result, err := svc.Submit(ctx, draftID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if reserver.calls != 3 {
		t.Errorf("reserve calls = %d, want 3", reserver.calls)
	}
	if cases.byReference[result.ReferenceNumber] == nil {
		t.Error("case not created after retried reservation")
	}
}

func TestWizardSubmitExhaustsReservations(t *testing.T) {
	svc, drafts, reserver, _ := newWizardForTest(t)
	ctx := context.Background()

	draftID := runWizardToFinalize(t, svc)

	reserver.refuse = 3

	_, err := svc.Submit(ctx, draftID)
	if !errors.Is(err, ErrReferenceExhaust) {
		t.Fatalf("err = %v, want ErrReferenceExhaust", err)
	}
	if reserver.calls != 3 {
		t.Errorf("reserve calls = %d, want 3", reserver.calls)
	}
	// The draft survives, so the submission can be retried later.
	if _, ok := drafts.drafts[draftID]; !ok {
		t.Error("draft must be kept when no reference could be reserved")
	}
}

func TestWizardSubmitIncomplete(t *testing.T) {
	svc, _, _, _ := newWizardForTest(t)
	ctx := context.Background()

	draft, _ := svc.StartDraft(ctx, "dewi")
	_, err := svc.Submit(ctx, draft.ID)
	if !errors.Is(err, ErrIncompleteWizard) {
		t.Fatalf("err = %v, want ErrIncompleteWizard", err)
	}
}

func TestWizardSubmitMissingDraft(t *testing.T) {
	svc, _, _, _ := newWizardForTest(t)

	_, err := svc.Submit(context.Background(), "nope")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound", err)
	}
}

func TestWizardDiscard(t *testing.T) {
	svc, drafts, _, _ := newWizardForTest(t)
	ctx := context.Background()

	draft, _ := svc.StartDraft(ctx, "dewi")
	if err := svc.Discard(ctx, draft.ID); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if _, ok := drafts.drafts[draft.ID]; ok {
		t.Error("draft should be gone after discard")
	}
}
