package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mindbridge/internal/model"
)

type adminService interface {
	Dashboard(ctx context.Context) (*model.Dashboard, error)
	ListTherapists(ctx context.Context, status model.TherapistStatus) ([]*model.Therapist, error)
	CreateTherapist(ctx context.Context, t model.Therapist) (*model.Therapist, error)
	UpdateTherapistStatus(ctx context.Context, id string, status model.TherapistStatus) (*model.Therapist, error)
	DeleteTherapist(ctx context.Context, id string) error
}

// AdminHandler handles counselor dashboard endpoints
type AdminHandler struct {
	adminSvc adminService
	logger   *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc adminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, logger: logger}
}

// Dashboard handles GET /v1/admin/analytics
// @Summary Platform analytics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Dashboard
// @Failure 403 {object} map[string]string
// @Router /admin/analytics [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.adminSvc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ListTherapists handles GET /v1/admin/therapists
func (h *AdminHandler) ListTherapists(w http.ResponseWriter, r *http.Request) {
	status := model.TherapistStatus(r.URL.Query().Get("status"))
	therapists, err := h.adminSvc.ListTherapists(r.Context(), status)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, therapists)
}

// CreateTherapist handles POST /v1/admin/therapists
func (h *AdminHandler) CreateTherapist(w http.ResponseWriter, r *http.Request) {
	var req model.Therapist
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.adminSvc.CreateTherapist(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTherapistStatus handles PUT /v1/admin/therapists/{id}/status
func (h *AdminHandler) UpdateTherapistStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTherapistStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.adminSvc.UpdateTherapistStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTherapist handles DELETE /v1/admin/therapists/{id}
func (h *AdminHandler) DeleteTherapist(w http.ResponseWriter, r *http.Request) {
	if err := h.adminSvc.DeleteTherapist(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
