package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/simanis/notary-system/internal/core/ports"
	"github.com/simanis/notary-system/internal/core/service"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestWizardStoreRoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	store := NewWizardStore(client)
	ctx := context.Background()

	draft := &ports.WizardDraft{
		ID:          "d-1",
		CreatedBy:   "admin",
		CurrentStep: ports.WizardStepClient,
		BasicInfo: ports.WizardBasicInfo{
			Title:         "Akta Jual Beli Tanah",
			ServiceTypeID: "st-1",
			CategoryID:    "cat-ppat",
		},
		Checklist: map[string]bool{"Sertifikat Tanah": false, "KTP Penjual": true},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := store.Save(ctx, draft, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "d-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.BasicInfo.Title != draft.BasicInfo.Title {
		t.Errorf("title = %q, want %q", got.BasicInfo.Title, draft.BasicInfo.Title)
	}
	if got.CurrentStep != ports.WizardStepClient {
		t.Errorf("current step = %d, want %d", got.CurrentStep, ports.WizardStepClient)
	}
	if !got.Checklist["KTP Penjual"] {
		t.Error("checklist toggle lost in round trip")
	}
}

func TestWizardStoreGetMissing(t *testing.T) {
	_, client := newTestClient(t)
	store := NewWizardStore(client)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, service.ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound", err)
	}
}

func TestWizardStoreExpiry(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewWizardStore(client)
	ctx := context.Background()

	draft := &ports.WizardDraft{ID: "d-2", Checklist: map[string]bool{}}
	if err := store.Save(ctx, draft, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "d-2"); !errors.Is(err, service.ErrDraftNotFound) {
		t.Fatalf("err after expiry = %v, want ErrDraftNotFound", err)
	}
}

func TestWizardStoreDelete(t *testing.T) {
	_, client := newTestClient(t)
	store := NewWizardStore(client)
	ctx := context.Background()

	draft := &ports.WizardDraft{ID: "d-3", Checklist: map[string]bool{}}
	if err := store.Save(ctx, draft, time.Hour); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "d-3"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "d-3"); !errors.Is(err, service.ErrDraftNotFound) {
		t.Fatalf("err after delete = %v, want ErrDraftNotFound", err)
	}

	// deleting again is not an error
	if err := store.Delete(ctx, "d-3"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestReferenceReserver(t *testing.T) {
	_, client := newTestClient(t)
	reserver := NewReferenceReserver(client)
	ctx := context.Background()

	ok, err := reserver.Reserve(ctx, "SRV-1700000000000-AB12C")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !ok {
		t.Fatal("first reservation should succeed")
	}

	ok, err = reserver.Reserve(ctx, "SRV-1700000000000-AB12C")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if ok {
		t.Fatal("second reservation of the same number should fail")
	}

	ok, err = reserver.Reserve(ctx, "SRV-1700000000000-ZZ99Z")
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if !ok {
		t.Fatal("a different number should still be reservable")
	}
}
