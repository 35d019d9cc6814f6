package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const reserveTTL = time.Hour

// ReferenceReserver claims generated reference numbers with SETNX so two
// concurrent wizard submissions cannot race for the same number.
// Key format: refnum:<reference_number>
type ReferenceReserver struct {
	client *redis.Client
}

// NewReferenceReserver creates a ReferenceReserver wrapping the given
// Redis client.
func NewReferenceReserver(client *redis.Client) *ReferenceReserver {
	return &ReferenceReserver{client: client}
}

// Reserve claims the reference number. It returns false when another
// submission already holds it. The claim expires after reserveTTL; the
// store's unique index covers anything beyond that window.
func (r *ReferenceReserver) Reserve(ctx context.Context, referenceNumber string) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(referenceNumber), "1", reserveTTL).Result()
	if err != nil {
		return false, fmt.Errorf("reserve reference: %w", err)
	}
	return ok, nil
}

func (r *ReferenceReserver) key(referenceNumber string) string {
	return "refnum:" + referenceNumber
}
