package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"mindbridge/internal/model"
)

// ChatLogRepo records classified chat turns for the admin dashboard
type ChatLogRepo interface {
	Create(ctx context.Context, log *model.ChatLog) error
}

type chatLogRepo struct {
	collection *mongo.Collection
}

// NewChatLogRepo creates a new chat log repository
func NewChatLogRepo(db *mongo.Database) ChatLogRepo {
	return &chatLogRepo{
		collection: db.Collection(chatLogsCollection),
	}
}

func (r *chatLogRepo) Create(ctx context.Context, log *model.ChatLog) error {
	result, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return err
	}
	log.ID = insertedID(result)
	return nil
}
