package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simanis/notary-system/internal/core/domain"
)

const collectionDeedDrafts = "deed_drafts"

type DeedDraftRepository struct {
	col *mongo.Collection
}

func NewDeedDraftRepository(db *mongo.Database) *DeedDraftRepository {
	return &DeedDraftRepository{col: db.Collection(collectionDeedDrafts)}
}

func (r *DeedDraftRepository) Insert(ctx context.Context, d *domain.DeedDraft) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, d)
	return err
}

// ListByCase returns drafts newest-version-first.
func (r *DeedDraftRepository) ListByCase(ctx context.Context, caseID string) ([]*domain.DeedDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var drafts []*domain.DeedDraft
	if err := cur.All(ctx, &drafts); err != nil {
		return nil, err
	}
	return drafts, nil
}

func (r *DeedDraftRepository) FindByID(ctx context.Context, id string) (*domain.DeedDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.DeedDraft
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeedDraftNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeedDraftRepository) Update(ctx context.Context, d *domain.DeedDraft) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDeedDraftNotFound
	}
	return nil
}
