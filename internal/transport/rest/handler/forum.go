package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mindbridge/internal/model"
	"mindbridge/internal/transport/rest/middleware"
)

type forumService interface {
	CreatePost(ctx context.Context, authorID, authorName string, req model.CreatePostRequest) (*model.Post, error)
	ListPosts(ctx context.Context, category model.ForumCategory, limit int) ([]*model.Post, error)
	GetThread(ctx context.Context, postID string) (*model.PostThread, error)
	AddReply(ctx context.Context, postID, authorID, authorName string, req model.CreateReplyRequest) (*model.Reply, error)
	Like(ctx context.Context, postID string) (int, error)
	Trending(ctx context.Context, limit int) ([]*model.Post, error)
}

// ForumHandler handles peer forum endpoints
type ForumHandler struct {
	forumSvc forumService
	logger   *zap.Logger
}

// NewForumHandler creates a new forum handler
func NewForumHandler(forumSvc forumService, logger *zap.Logger) *ForumHandler {
	return &ForumHandler{forumSvc: forumSvc, logger: logger}
}

// author returns the caller's ID and display name. Anonymous sessions
// have no name.
func author(r *http.Request) (string, string) {
	if c := middleware.GetClaims(r.Context()); c != nil {
		return c.Subject, c.Name
	}
	if s := middleware.GetSession(r.Context()); s != nil {
		return s.ID, ""
	}
	return "", ""
}

// ListPosts handles GET /v1/forum/posts
// @Summary List forum posts
// @Tags forum
// @Produce json
// @Param category query string false "category filter"
// @Param limit query int false "max posts"
// @Success 200 {array} model.Post
// @Router /forum/posts [get]
func (h *ForumHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	category := model.ForumCategory(r.URL.Query().Get("category"))
	posts, err := h.forumSvc.ListPosts(r.Context(), category, queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreatePost handles POST /v1/forum/posts
func (h *ForumHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, name := author(r)
	post, err := h.forumSvc.CreatePost(r.Context(), id, name, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// GetPost handles GET /v1/forum/posts/{postId}
func (h *ForumHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	thread, err := h.forumSvc.GetThread(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, thread)
}

// AddReply handles POST /v1/forum/posts/{postId}/replies
func (h *ForumHandler) AddReply(w http.ResponseWriter, r *http.Request) {
	var req model.CreateReplyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, name := author(r)
	reply, err := h.forumSvc.AddReply(r.Context(), mux.Vars(r)["postId"], id, name, req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, reply)
}

// Like handles POST /v1/forum/posts/{postId}/like
func (h *ForumHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	likes, err := h.forumSvc.Like(r.Context(), postID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"postId": postID, "likes": likes})
}

// Trending handles GET /v1/forum/trending
func (h *ForumHandler) Trending(w http.ResponseWriter, r *http.Request) {
	posts, err := h.forumSvc.Trending(r.Context(), queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}
