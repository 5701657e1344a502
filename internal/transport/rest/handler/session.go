package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"mindbridge/internal/model"
	"mindbridge/internal/transport/rest/middleware"
)

type sessionService interface {
	CreateAnonymous(ctx context.Context, req model.CreateAnonymousSessionRequest) (*model.AnonymousSession, error)
	End(ctx context.Context, token string) error
}

// SessionHandler handles anonymous session endpoints
type SessionHandler struct {
	sessionSvc sessionService
	logger     *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc sessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, logger: logger}
}

// Create handles POST /v1/sessions/anonymous
// @Summary Start an anonymous help session
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body model.CreateAnonymousSessionRequest true "demographics"
// @Success 201 {object} model.CreateAnonymousSessionResponse
// @Router /sessions/anonymous [post]
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAnonymousSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionSvc.CreateAnonymous(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.CreateAnonymousSessionResponse{
		Message:      "Anonymous session created successfully.",
		SessionToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
	})
}

// Get handles GET /v1/sessions/anonymous
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session == nil {
		writeError(w, http.StatusUnauthorized, "anonymous session required")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// End handles DELETE /v1/sessions/anonymous
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.SessionTokenHeader)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "anonymous session required")
		return
	}
	if err := h.sessionSvc.End(r.Context(), token); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
