package handler

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"mindbridge/internal/model"
	"mindbridge/internal/service"
)

type chatService interface {
	Reply(ctx context.Context, caller service.Caller, req model.ChatRequest) (*model.ChatResponse, error)
}

// ChatHandler handles the AI companion endpoint
type ChatHandler struct {
	chatSvc chatService
	logger  *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc chatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatSvc: chatSvc, logger: logger}
}

// Reply handles POST /v1/chat
// @Summary Talk to the AI companion
// @Tags chat
// @Accept json
// @Produce json
// @Param body body model.ChatRequest true "conversation"
// @Success 200 {object} model.ChatResponse
// @Failure 400 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) Reply(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.chatSvc.Reply(r.Context(), callerOf(r), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
