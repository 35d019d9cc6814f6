package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

type stubDeedDraftRepo struct {
	byID   map[string]*domain.DeedDraft
	nextID int
}

func newStubDeedDraftRepo() *stubDeedDraftRepo {
	return &stubDeedDraftRepo{byID: make(map[string]*domain.DeedDraft)}
}

func (r *stubDeedDraftRepo) Insert(_ context.Context, d *domain.DeedDraft) error {
	r.nextID++
	d.ID = fmt.Sprintf("deed-%d", r.nextID)
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

func (r *stubDeedDraftRepo) ListByCase(_ context.Context, caseID string) ([]*domain.DeedDraft, error) {
	var out []*domain.DeedDraft
	for _, d := range r.byID {
		if d.CaseID == caseID {
			clone := *d
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubDeedDraftRepo) FindByID(_ context.Context, id string) (*domain.DeedDraft, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDeedDraftNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDeedDraftRepo) Update(_ context.Context, d *domain.DeedDraft) error {
	if _, ok := r.byID[d.ID]; !ok {
		return domain.ErrDeedDraftNotFound
	}
	clone := *d
	r.byID[d.ID] = &clone
	return nil
}

type stubLegalityRepo struct {
	checks []*domain.LegalityVerification
}

func (r *stubLegalityRepo) Insert(_ context.Context, v *domain.LegalityVerification) error {
	if v.ID == "" {
		v.ID = fmt.Sprintf("lv-%d", len(r.checks)+1)
	}
	clone := *v
	r.checks = append(r.checks, &clone)
	return nil
}

func (r *stubLegalityRepo) ListByCase(_ context.Context, caseID string) ([]*domain.LegalityVerification, error) {
	var out []*domain.LegalityVerification
	for _, v := range r.checks {
		if v.CaseID == caseID {
			clone := *v
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubLegalityRepo) Update(_ context.Context, v *domain.LegalityVerification) error {
	for i, existing := range r.checks {
		if existing.ID == v.ID {
			clone := *v
			r.checks[i] = &clone
			return nil
		}
	}
	return domain.ErrVerificationNotFound
}

func newDeedServiceForTest() (*DeedService, *stubCaseRepo, *stubDeedDraftRepo, *stubTimelineRepo) {
	cases := newStubCaseRepo()
	cases.byReference["SRV-1-AAAAA"] = &domain.Case{
		ReferenceNumber: "SRV-1-AAAAA",
		Title:           "Akta Jual Beli",
		Status:          domain.StatusInProgress,
	}
	drafts := newStubDeedDraftRepo()
	timeline := &stubTimelineRepo{}
	svc := NewDeedService(drafts, &stubLegalityRepo{}, cases, timeline, zerolog.Nop())
	return svc, cases, drafts, timeline
}

func TestCreateDraftVersionsSequentially(t *testing.T) {
	svc, _, _, _ := newDeedServiceForTest()
	ctx := context.Background()

	first, err := svc.CreateDraft(ctx, ports.CreateDeedDraftInput{
		CaseID:    "SRV-1-AAAAA",
		Content:   "Pada hari ini ...",
		CreatedBy: "dewi",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if first.Version != 1 {
		t.Errorf("version = %d, want 1", first.Version)
	}
	if first.Status != domain.DeedDraftDrafting {
		t.Errorf("status = %s, want drafting", first.Status)
	}

	second, err := svc.CreateDraft(ctx, ports.CreateDeedDraftInput{
		CaseID: "SRV-1-AAAAA", Content: "Revisi pertama", CreatedBy: "dewi",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if second.Version != 2 {
		t.Errorf("version = %d, want 2", second.Version)
	}
}

func TestCreateDraftUnknownCase(t *testing.T) {
	svc, _, _, _ := newDeedServiceForTest()

	_, err := svc.CreateDraft(context.Background(), ports.CreateDeedDraftInput{CaseID: "SRV-9-ZZZZZ"})
	if !errors.Is(err, domain.ErrCaseNotFound) {
		t.Fatalf("err = %v, want ErrCaseNotFound", err)
	}
}

func TestUpdateDraftStatus(t *testing.T) {
	svc, _, _, _ := newDeedServiceForTest()
	ctx := context.Background()

	d, err := svc.CreateDraft(ctx, ports.CreateDeedDraftInput{
		CaseID: "SRV-1-AAAAA", Content: "Draf awal", CreatedBy: "dewi",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	status := "review"
	reviewer := "notaris"
	updated, err := svc.UpdateDraft(ctx, d.ID, ports.UpdateDeedDraftInput{
		Status: &status, ReviewedBy: &reviewer,
	})
	if err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if updated.Status != domain.DeedDraftReview || updated.ReviewedBy != "notaris" {
		t.Errorf("unexpected draft after update: %+v", updated)
	}

	bad := "final"
	if _, err := svc.UpdateDraft(ctx, d.ID, ports.UpdateDeedDraftInput{Status: &bad}); err == nil {
		t.Error("expected error for unknown status")
	}

	scheduled := time.Now().UTC().Add(72 * time.Hour)
	updated, err = svc.UpdateDraft(ctx, d.ID, ports.UpdateDeedDraftInput{SignatureScheduled: &scheduled})
	if err != nil {
		t.Fatalf("UpdateDraft schedule: %v", err)
	}
	if updated.SignatureScheduled == nil || !updated.SignatureScheduled.Equal(scheduled) {
		t.Error("signature schedule not applied")
	}
}

func TestRecordVerificationFlipsAdvisoryFlag(t *testing.T) {
	svc, cases, _, timeline := newDeedServiceForTest()
	ctx := context.Background()

	v, err := svc.RecordVerification(ctx, ports.RecordVerificationInput{
		CaseID:           "SRV-1-AAAAA",
		VerificationType: "sertifikat",
		Status:           "pending",
		VerifiedBy:       "dewi",
	})
	if err != nil {
		t.Fatalf("RecordVerification: %v", err)
	}
	if v.ID == "" {
		t.Error("verification not assigned an ID")
	}
	if cases.byReference["SRV-1-AAAAA"].LegalityVerified {
		t.Error("pending verification must not flip the legality flag")
	}

	if _, err := svc.RecordVerification(ctx, ports.RecordVerificationInput{
		CaseID:           "SRV-1-AAAAA",
		VerificationType: "sertifikat",
		Status:           VerificationPassed,
		VerifiedBy:       "dewi",
	}); err != nil {
		t.Fatalf("RecordVerification: %v", err)
	}
	if !cases.byReference["SRV-1-AAAAA"].LegalityVerified {
		t.Error("passed verification should flip the legality flag")
	}

	if len(timeline.entries) != 2 {
		t.Errorf("timeline has %d entries, want 2", len(timeline.entries))
	}

	checks, err := svc.ListVerifications(ctx, "SRV-1-AAAAA")
	if err != nil {
		t.Fatalf("ListVerifications: %v", err)
	}
	if len(checks) != 2 {
		t.Errorf("verifications = %d, want 2", len(checks))
	}
}
