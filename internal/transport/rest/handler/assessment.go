package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"mindbridge/internal/assessment"
	"mindbridge/internal/model"
)

type assessmentService interface {
	Instruments() []*assessment.Instrument
	Instrument(code string) (*assessment.Instrument, error)
	Submit(ctx context.Context, owner model.Owner, session *model.AnonymousSession, code string, answers []int) (*model.AssessmentResponse, error)
	History(ctx context.Context, owner model.Owner, limit int) ([]*model.AssessmentResponse, error)
}

type instrumentView struct {
	*assessment.Instrument
	MaxScore int `json:"maxScore"`
}

// AssessmentHandler handles screening questionnaire endpoints
type AssessmentHandler struct {
	assessmentSvc assessmentService
	logger        *zap.Logger
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc assessmentService, logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc, logger: logger}
}

// List handles GET /v1/assessments
// @Summary List screening instruments
// @Tags assessments
// @Produce json
// @Success 200 {array} assessment.Instrument
// @Router /assessments [get]
func (h *AssessmentHandler) List(w http.ResponseWriter, r *http.Request) {
	instruments := h.assessmentSvc.Instruments()
	out := make([]instrumentView, len(instruments))
	for i, in := range instruments {
		out[i] = instrumentView{Instrument: in, MaxScore: in.MaxScore()}
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /v1/assessments/{code}
func (h *AssessmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	in, err := h.assessmentSvc.Instrument(mux.Vars(r)["code"])
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, instrumentView{Instrument: in, MaxScore: in.MaxScore()})
}

// Submit handles POST /v1/assessments/{code}
// @Summary Score a completed questionnaire
// @Tags assessments
// @Accept json
// @Produce json
// @Param code path string true "phq9, gad7 or ghq12"
// @Param body body model.SubmitAssessmentRequest true "answers"
// @Success 201 {object} model.AssessmentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /assessments/{code} [post]
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	owner, session, ok := ownerOf(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login or anonymous session required")
		return
	}

	var req model.SubmitAssessmentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.Submit(r.Context(), owner, session, mux.Vars(r)["code"], req.Answers)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// History handles GET /v1/assessments/history
func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	owner, _, ok := ownerOf(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "login or anonymous session required")
		return
	}

	history, err := h.assessmentSvc.History(r.Context(), owner, queryInt(r, "limit"))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}
