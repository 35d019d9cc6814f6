package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simanis/notary-system/internal/core/domain"
)

const collectionTimeline = "case_timeline"

type TimelineRepository struct {
	col *mongo.Collection
}

func NewTimelineRepository(db *mongo.Database) *TimelineRepository {
	return &TimelineRepository{col: db.Collection(collectionTimeline)}
}

// Append inserts an audit entry. Entries are never updated or removed.
func (r *TimelineRepository) Append(ctx context.Context, entry *domain.TimelineEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, entry)
	return err
}

// ListByCase returns entries newest-first.
func (r *TimelineRepository) ListByCase(ctx context.Context, caseID string) ([]*domain.TimelineEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []*domain.TimelineEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
