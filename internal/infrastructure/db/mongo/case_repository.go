package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

const collectionCases = "cases"

// sortableCaseFields whitelists the fields a caller may sort on.
var sortableCaseFields = map[string]string{
	"created_at":                "created_at",
	"updated_at":                "updated_at",
	"title":                     "title",
	"priority":                  "priority",
	"status":                    "status",
	"fee_amount":                "fee_amount",
	"estimated_completion_date": "estimated_completion_date",
}

type CaseRepository struct {
	col *mongo.Collection
}

func NewCaseRepository(db *mongo.Database) *CaseRepository {
	return &CaseRepository{col: db.Collection(collectionCases)}
}

// Create inserts a new case document.
func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, c)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateReference
	}
	return err
}

// FindByReference retrieves a case by reference number.
func (r *CaseRepository) FindByReference(ctx context.Context, referenceNumber string) (*domain.Case, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Case
	err := r.col.FindOne(ctx, bson.M{"reference_number": referenceNumber}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns a page of cases matching filter and the total count.
// Default order is newest-created-first; an explicit sort on a
// whitelisted field overrides it.
func (r *CaseRepository) List(ctx context.Context, filter ports.ListCasesFilter) ([]*domain.Case, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}
	if filter.Category != "" {
		query["category_id"] = filter.Category
	}
	if filter.Search != "" {
		escaped := primitive.Regex{Pattern: regexQuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": escaped},
			bson.M{"reference_number": escaped},
		}
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	sortField, ok := sortableCaseFields[filter.SortBy]
	order := -1
	if !ok {
		sortField = "created_at"
	} else if filter.SortAsc {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var cases []*domain.Case
	if err := cur.All(ctx, &cases); err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// Update replaces the case document.
func (r *CaseRepository) Update(ctx context.Context, c *domain.Case) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

// UpdateStatus sets the status and the matching lifecycle timestamp in a
// single write.
func (r *CaseRepository) UpdateStatus(ctx context.Context, referenceNumber string, status domain.CaseStatus, ts time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": string(status), "updated_at": ts}
	switch status {
	case domain.StatusInProgress:
		set["started_at"] = ts
	case domain.StatusCompleted:
		set["completed_at"] = ts
		set["actual_completion_date"] = ts
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"reference_number": referenceNumber}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

// CountByStatus aggregates case counts per status.
func (r *CaseRepository) CountByStatus(ctx context.Context) (map[domain.CaseStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[domain.CaseStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[domain.CaseStatus(row.Status)] = row.Count
	}
	return counts, cur.Err()
}

// EnsureIndexes creates necessary indexes on the cases collection. The
// unique reference_number index is the final guard against generator
// collisions.
func (r *CaseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
