package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindbridge/internal/model"
)

// AssessmentRepo stores completed questionnaires
type AssessmentRepo interface {
	Create(ctx context.Context, record *model.AssessmentRecord) (string, error)
	ListByOwner(ctx context.Context, owner model.Owner, limit int64) ([]*model.AssessmentRecord, error)
}

type assessmentRepo struct {
	collection *mongo.Collection
}

// NewAssessmentRepo creates a new assessment repository
func NewAssessmentRepo(db *mongo.Database) AssessmentRepo {
	return &assessmentRepo{
		collection: db.Collection(assessmentsCollection),
	}
}

func (r *assessmentRepo) Create(ctx context.Context, record *model.AssessmentRecord) (string, error) {
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	record.ID = insertedID(result)
	return record.ID, nil
}

func (r *assessmentRepo) ListByOwner(ctx context.Context, owner model.Owner, limit int64) ([]*model.AssessmentRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "result.completedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"owner.kind": owner.Kind, "owner.id": owner.ID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.AssessmentRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
