package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindbridge/internal/model"
)

// ForumRepo handles MongoDB operations for posts and replies
type ForumRepo interface {
	CreatePost(ctx context.Context, post *model.Post) (string, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	GetPosts(ctx context.Context, ids []string) ([]*model.Post, error)
	ListPosts(ctx context.Context, category model.ForumCategory, limit int64) ([]*model.Post, error)
	CreateReply(ctx context.Context, reply *model.Reply) (string, error)
	ListReplies(ctx context.Context, postID string) ([]*model.Reply, error)
	IncrementLikes(ctx context.Context, postID string) (int, error)
}

type forumRepo struct {
	posts   *mongo.Collection
	replies *mongo.Collection
}

// NewForumRepo creates a new forum repository
func NewForumRepo(db *mongo.Database) ForumRepo {
	return &forumRepo{
		posts:   db.Collection(postsCollection),
		replies: db.Collection(repliesCollection),
	}
}

func (r *forumRepo) CreatePost(ctx context.Context, post *model.Post) (string, error) {
	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return "", err
	}
	post.ID = insertedID(result)
	return post.ID, nil
}

func (r *forumRepo) GetPost(ctx context.Context, id string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var post model.Post
	err = r.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts fetches posts by id, preserving the order of ids and skipping
// ids that no longer exist.
func (r *forumRepo) GetPosts(ctx context.Context, ids []string) ([]*model.Post, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cursor, err := r.posts.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var found []*model.Post
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	posts := make([]*model.Post, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *forumRepo) ListPosts(ctx context.Context, category model.ForumCategory, limit int64) ([]*model.Post, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)

	cursor, err := r.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var posts []*model.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateReply inserts the reply and bumps the parent's reply count.
func (r *forumRepo) CreateReply(ctx context.Context, reply *model.Reply) (string, error) {
	oid, err := primitive.ObjectIDFromHex(reply.PostID)
	if err != nil {
		return "", err
	}

	result, err := r.replies.InsertOne(ctx, reply)
	if err != nil {
		return "", err
	}
	reply.ID = insertedID(result)

	_, err = r.posts.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"replies": 1}})
	return reply.ID, err
}

func (r *forumRepo) ListReplies(ctx context.Context, postID string) ([]*model.Reply, error) {
	cursor, err := r.replies.Find(ctx, bson.M{"postId": postID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var replies []*model.Reply
	if err := cursor.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// IncrementLikes returns the new like count.
func (r *forumRepo) IncrementLikes(ctx context.Context, postID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return 0, ErrNotFound
	}

	var post model.Post
	err = r.posts.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return post.Likes, nil
}
