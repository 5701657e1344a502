package handler

import (
	"net/http"

	"go.uber.org/zap"

	"mindbridge/internal/resources"
)

// ResourceHandler serves the self-help resource hub
type ResourceHandler struct {
	catalog *resources.Catalog
	logger  *zap.Logger
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(catalog *resources.Catalog, logger *zap.Logger) *ResourceHandler {
	return &ResourceHandler{catalog: catalog, logger: logger}
}

// List handles GET /v1/resources
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.List(r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}
