package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindbridge/internal/cache"
	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

const (
	defaultPostLimit = 20
	maxPostLimit     = 100

	// trending score weights
	likeWeight  = 1
	replyWeight = 2
)

// ForumService runs the peer support forum
type ForumService struct {
	repo        repository.ForumRepo
	trending    cache.TrendingCache
	analytics   cache.AnalyticsCache
	broadcaster Broadcaster
	now         func() time.Time
	logger      *zap.Logger
}

// NewForumService creates a new forum service
func NewForumService(repo repository.ForumRepo, trending cache.TrendingCache, analytics cache.AnalyticsCache, logger *zap.Logger) *ForumService {
	return &ForumService{
		repo:        repo,
		trending:    trending,
		analytics:   analytics,
		broadcaster: nopBroadcaster{},
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for forum events
func (s *ForumService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// CreatePost publishes a post. authorName is ignored for anonymous posts.
func (s *ForumService) CreatePost(ctx context.Context, authorID, authorName string, req model.CreatePostRequest) (*model.Post, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	category := req.Category
	if category == "" {
		category = model.CategoryGeneral
	}

	var v validator
	v.check(title != "", "title", "Title is required")
	v.check(len(title) <= 200, "title", "Title must be at most 200 characters")
	v.check(content != "", "content", "Content is required")
	v.check(category.Valid(), "category", "Unknown category")
	if err := v.err(); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:       title,
		Content:     content,
		Category:    category,
		AuthorID:    authorID,
		AuthorName:  displayName(authorName, req.IsAnonymous),
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   s.now(),
	}
	if _, err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if err := s.trending.Bump(ctx, post.ID, 0); err != nil {
		s.logger.Warn("seed trending score failed", zap.String("postId", post.ID), zap.Error(err))
	}
	s.count(ctx)
	s.broadcaster.Broadcast(ChannelForum, MsgNewPost, post)

	s.logger.Info("forum post created", zap.String("postId", post.ID), zap.String("category", string(post.Category)))
	return post, nil
}

// ListPosts returns the newest posts, optionally filtered by category.
func (s *ForumService) ListPosts(ctx context.Context, category model.ForumCategory, limit int) ([]*model.Post, error) {
	if category != "" && !category.Valid() {
		return nil, &ValidationError{Fields: []FieldError{{Field: "category", Message: "Unknown category"}}}
	}
	posts, err := s.repo.ListPosts(ctx, category, int64(clampLimit(limit, defaultPostLimit, maxPostLimit)))
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	return posts, nil
}

// GetThread returns a post and its replies, oldest reply first.
func (s *ForumService) GetThread(ctx context.Context, postID string) (*model.PostThread, error) {
	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	replies, err := s.repo.ListReplies(ctx, postID)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []*model.Reply{}
	}
	return &model.PostThread{Post: post, Replies: replies}, nil
}

// AddReply answers a post and increments its reply count.
func (s *ForumService) AddReply(ctx context.Context, postID, authorID, authorName string, req model.CreateReplyRequest) (*model.Reply, error) {
	content := strings.TrimSpace(req.Content)
	var v validator
	v.check(content != "", "content", "Content is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	post, err := s.repo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	reply := &model.Reply{
		PostID:      post.ID,
		Content:     content,
		AuthorID:    authorID,
		AuthorName:  displayName(authorName, req.IsAnonymous),
		IsAnonymous: req.IsAnonymous,
		CreatedAt:   s.now(),
	}
	if _, err := s.repo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	s.bump(ctx, post.ID, replyWeight)
	s.count(ctx)
	s.broadcaster.Broadcast(ChannelForum, MsgNewReply, reply)
	return reply, nil
}

// Like increments a post's like count and returns the new total.
func (s *ForumService) Like(ctx context.Context, postID string) (int, error) {
	likes, err := s.repo.IncrementLikes(ctx, postID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrPostNotFound
	}
	if err != nil {
		return 0, err
	}

	s.bump(ctx, postID, likeWeight)
	s.broadcaster.Broadcast(ChannelForum, MsgPostLiked, map[string]interface{}{
		"postId": postID,
		"likes":  likes,
	})
	return likes, nil
}

// Trending returns the most engaged posts, highest score first.
func (s *ForumService) Trending(ctx context.Context, limit int) ([]*model.Post, error) {
	entries, err := s.trending.Top(ctx, clampLimit(limit, 10, maxPostLimit))
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.PostID
	}

	posts, err := s.repo.GetPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*model.Post{}
	}
	return posts, nil
}

func (s *ForumService) bump(ctx context.Context, postID string, by float64) {
	if err := s.trending.Bump(ctx, postID, by); err != nil {
		s.logger.Warn("trending bump failed", zap.String("postId", postID), zap.Error(err))
	}
}

func (s *ForumService) count(ctx context.Context) {
	if err := s.analytics.Increment(ctx, model.CounterResource, model.ResourcePeerForum); err != nil {
		s.logger.Warn("analytics increment failed", zap.Error(err))
	}
}

func displayName(name string, anonymous bool) string {
	name = strings.TrimSpace(name)
	if anonymous || name == "" {
		return model.AnonymousAuthor
	}
	return name
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
