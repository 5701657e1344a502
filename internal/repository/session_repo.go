package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindbridge/internal/assessment"
	"mindbridge/internal/model"
)

// SessionRepo persists anonymous sessions
type SessionRepo interface {
	Create(ctx context.Context, session *model.AnonymousSession) error
	GetByToken(ctx context.Context, token string) (*model.AnonymousSession, error)
	SetScreeningResult(ctx context.Context, id string, result *assessment.Result) error
	Deactivate(ctx context.Context, id string) error
	CountActive(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	collection *mongo.Collection
}

// NewSessionRepo creates a new anonymous session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		collection: db.Collection(sessionsCollection),
	}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.AnonymousSession) error {
	_, err := r.collection.InsertOne(ctx, session)
	return wrapWriteErr(err)
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*model.AnonymousSession, error) {
	var session model.AnonymousSession
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) SetScreeningResult(ctx context.Context, id string, result *assessment.Result) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"profile.screeningResults." + result.InstrumentCode: result}},
	)
	return err
}

func (r *sessionRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isActive": false}})
	return err
}

func (r *sessionRepo) CountActive(ctx context.Context, now time.Time) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"isActive":  true,
		"expiresAt": bson.M{"$gt": now},
	})
}
