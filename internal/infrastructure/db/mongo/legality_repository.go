package mongo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simanis/notary-system/internal/core/domain"
)

const collectionLegality = "legality_verifications"

type LegalityRepository struct {
	col *mongo.Collection
}

func NewLegalityRepository(db *mongo.Database) *LegalityRepository {
	return &LegalityRepository{col: db.Collection(collectionLegality)}
}

func (r *LegalityRepository) Insert(ctx context.Context, v *domain.LegalityVerification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, v)
	return err
}

func (r *LegalityRepository) ListByCase(ctx context.Context, caseID string) ([]*domain.LegalityVerification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var checks []*domain.LegalityVerification
	if err := cur.All(ctx, &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

func (r *LegalityRepository) Update(ctx context.Context, v *domain.LegalityVerification) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrVerificationNotFound
	}
	return nil
}
