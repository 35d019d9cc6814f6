package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simanis/notary-system/internal/core/ports"
	"github.com/simanis/notary-system/internal/core/service"
)

// WizardStore persists in-flight creation wizard drafts as JSON blobs.
// Key format: wizard:draft:<draft_id>
type WizardStore struct {
	client *redis.Client
}

// NewWizardStore creates a WizardStore wrapping the given Redis client.
func NewWizardStore(client *redis.Client) *WizardStore {
	return &WizardStore{client: client}
}

// Save stores the draft, refreshing its expiry on every write.
func (s *WizardStore) Save(ctx context.Context, draft *ports.WizardDraft, ttl time.Duration) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return s.client.Set(ctx, s.key(draft.ID), payload, ttl).Err()
}

// Get loads a draft; an expired or unknown ID maps to ErrDraftNotFound.
func (s *WizardStore) Get(ctx context.Context, draftID string) (*ports.WizardDraft, error) {
	payload, err := s.client.Get(ctx, s.key(draftID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrDraftNotFound
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft ports.WizardDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft. Deleting an unknown ID is not an error.
func (s *WizardStore) Delete(ctx context.Context, draftID string) error {
	return s.client.Del(ctx, s.key(draftID)).Err()
}

func (s *WizardStore) key(draftID string) string {
	return "wizard:draft:" + draftID
}
