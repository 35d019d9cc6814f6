package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simanis/notary-system/internal/core/domain"
)

const (
	collectionServiceTypes = "service_types"
	collectionCategories   = "service_categories"
)

type ServiceTypeRepository struct {
	col *mongo.Collection
}

func NewServiceTypeRepository(db *mongo.Database) *ServiceTypeRepository {
	return &ServiceTypeRepository{col: db.Collection(collectionServiceTypes)}
}

func (r *ServiceTypeRepository) FindByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var st domain.ServiceType
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&st)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceTypeNotFound
		}
		return nil, err
	}
	return &st, nil
}

// List returns active service types, optionally scoped to one category.
func (r *ServiceTypeRepository) List(ctx context.Context, category string) ([]*domain.ServiceType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"is_active": true}
	if category != "" {
		query["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var types []*domain.ServiceType
	if err := cur.All(ctx, &types); err != nil {
		return nil, err
	}
	return types, nil
}

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cat domain.ServiceCategory
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&cat)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceTypeNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.ServiceCategory, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []*domain.ServiceCategory
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
