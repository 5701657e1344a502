package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindbridge/internal/model"
)

// TherapistRepo handles MongoDB operations for the therapist directory
type TherapistRepo interface {
	Create(ctx context.Context, therapist *model.Therapist) (string, error)
	GetByID(ctx context.Context, id string) (*model.Therapist, error)
	List(ctx context.Context, status model.TherapistStatus) ([]*model.Therapist, error)
	UpdateStatus(ctx context.Context, id string, status model.TherapistStatus) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type therapistRepo struct {
	collection *mongo.Collection
}

// NewTherapistRepo creates a new therapist repository
func NewTherapistRepo(db *mongo.Database) TherapistRepo {
	return &therapistRepo{
		collection: db.Collection(therapistsCollection),
	}
}

func (r *therapistRepo) Create(ctx context.Context, therapist *model.Therapist) (string, error) {
	therapist.CreatedAt = time.Now()
	therapist.UpdatedAt = therapist.CreatedAt

	result, err := r.collection.InsertOne(ctx, therapist)
	if err != nil {
		return "", wrapWriteErr(err)
	}
	therapist.ID = insertedID(result)
	return therapist.ID, nil
}

func (r *therapistRepo) GetByID(ctx context.Context, id string) (*model.Therapist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var therapist model.Therapist
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&therapist)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &therapist, nil
}

// List returns therapists sorted by name; an empty status lists everyone.
func (r *therapistRepo) List(ctx context.Context, status model.TherapistStatus) ([]*model.Therapist, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var therapists []*model.Therapist
	if err := cursor.All(ctx, &therapists); err != nil {
		return nil, err
	}
	return therapists, nil
}

func (r *therapistRepo) UpdateStatus(ctx context.Context, id string, status model.TherapistStatus) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *therapistRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *therapistRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": model.TherapistActive})
}
