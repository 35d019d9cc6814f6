package mongo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

const collectionWorksheets = "worksheets"

type WorksheetRepository struct {
	col *mongo.Collection
}

func NewWorksheetRepository(db *mongo.Database) *WorksheetRepository {
	return &WorksheetRepository{col: db.Collection(collectionWorksheets)}
}

func (r *WorksheetRepository) Create(ctx context.Context, w *domain.Worksheet) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, w)
	return err
}

func (r *WorksheetRepository) FindByID(ctx context.Context, id string) (*domain.Worksheet, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.Worksheet
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorksheetNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *WorksheetRepository) List(ctx context.Context, filter ports.ListWorksheetsFilter) ([]*domain.Worksheet, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexQuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"number": pattern},
			bson.M{"service_name": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var sheets []*domain.Worksheet
	if err := cur.All(ctx, &sheets); err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

func (r *WorksheetRepository) Update(ctx context.Context, w *domain.Worksheet) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": w.ID}, w)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorksheetNotFound
	}
	return nil
}

// Count returns the total worksheet count, used for sequential numbering.
func (r *WorksheetRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}
