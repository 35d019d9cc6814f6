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

const collectionDocuments = "case_documents"

type DocumentRepository struct {
	col *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{col: db.Collection(collectionDocuments)}
}

func (r *DocumentRepository) Insert(ctx context.Context, doc *domain.CaseDocument) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *DocumentRepository) InsertMany(ctx context.Context, docs []*domain.CaseDocument) error {
	if len(docs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows := make([]any, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		rows = append(rows, d)
	}
	_, err := r.col.InsertMany(ctx, rows)
	return err
}

func (r *DocumentRepository) ListByCase(ctx context.Context, caseID string) ([]*domain.CaseDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "document_name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"case_id": caseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []*domain.CaseDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.CaseDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc domain.CaseDocument
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Update(ctx context.Context, doc *domain.CaseDocument) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
