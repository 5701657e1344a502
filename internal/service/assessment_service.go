package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindbridge/internal/assessment"
	"mindbridge/internal/cache"
	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// AssessmentService scores questionnaires and keeps each owner's history
type AssessmentService struct {
	engine      *assessment.Engine
	repo        repository.AssessmentRepo
	sessions    *SessionService
	analytics   cache.AnalyticsCache
	broadcaster Broadcaster
	logger      *zap.Logger
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(engine *assessment.Engine, repo repository.AssessmentRepo, sessions *SessionService, analytics cache.AnalyticsCache, logger *zap.Logger) *AssessmentService {
	return &AssessmentService{
		engine:      engine,
		repo:        repo,
		sessions:    sessions,
		analytics:   analytics,
		broadcaster: nopBroadcaster{},
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for admin alerts
func (s *AssessmentService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Instruments lists the available questionnaires.
func (s *AssessmentService) Instruments() []*assessment.Instrument {
	return s.engine.Instruments()
}

// Instrument returns one questionnaire by code.
func (s *AssessmentService) Instrument(code string) (*assessment.Instrument, error) {
	in, ok := s.engine.Instrument(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", assessment.ErrUnknownInstrument, code)
	}
	return in, nil
}

// Submit scores answers and records the result for owner. session is set
// when the owner is anonymous.
func (s *AssessmentService) Submit(ctx context.Context, owner model.Owner, session *model.AnonymousSession, code string, answers []int) (*model.AssessmentResponse, error) {
	result, err := s.engine.Compute(code, answers)
	if err != nil {
		return nil, err
	}
	in, _ := s.engine.Instrument(code)

	record := &model.AssessmentRecord{
		Owner:          owner,
		InstrumentName: in.Name,
		Answers:        answers,
		Result:         *result,
	}
	if _, err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	if session != nil {
		if err := s.sessions.RecordScreening(ctx, session, result); err != nil {
			s.logger.Warn("record screening on session failed", zap.String("sessionId", session.ID), zap.Error(err))
		}
	}

	s.count(ctx, model.CounterSeverity, in.Code+":"+result.Severity.Level)
	s.count(ctx, model.CounterResource, model.ResourceAssessments)

	elevated := isTopBand(in, result.Severity)
	if elevated {
		s.broadcaster.Broadcast(ChannelAdmin, MsgAlert, model.Alert{
			Kind:      "severe_assessment",
			SessionID: owner.ID,
			Detail:    fmt.Sprintf("%s scored %d/%d (%s)", in.Name, result.TotalScore, result.MaxScore, result.Severity.Level),
			CreatedAt: result.CompletedAt,
		})
	}

	s.logger.Info("assessment scored",
		zap.String("instrument", in.Code),
		zap.String("ownerKind", string(owner.Kind)),
		zap.Int("total", result.TotalScore),
		zap.String("severity", result.Severity.Level))

	return toAssessmentResponse(record, in, elevated), nil
}

// History returns the owner's results, newest first.
func (s *AssessmentService) History(ctx context.Context, owner model.Owner, limit int) ([]*model.AssessmentResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := s.repo.ListByOwner(ctx, owner, int64(limit))
	if err != nil {
		return nil, err
	}

	out := make([]*model.AssessmentResponse, 0, len(records))
	for _, r := range records {
		in, ok := s.engine.Instrument(r.Result.InstrumentCode)
		if !ok {
			continue
		}
		out = append(out, toAssessmentResponse(r, in, isTopBand(in, r.Result.Severity)))
	}
	return out, nil
}

func (s *AssessmentService) count(ctx context.Context, group, field string) {
	if err := s.analytics.Increment(ctx, group, field); err != nil {
		s.logger.Warn("analytics increment failed", zap.String("group", group), zap.String("field", field), zap.Error(err))
	}
}

func isTopBand(in *assessment.Instrument, band assessment.SeverityBand) bool {
	return len(in.Bands) > 0 && in.Bands[len(in.Bands)-1] == band
}

const counselorRecommendation = "Your responses suggest you may benefit from talking with a counselor. " +
	"Consider booking a session, and if you are in crisis call or text 988."

func toAssessmentResponse(r *model.AssessmentRecord, in *assessment.Instrument, elevated bool) *model.AssessmentResponse {
	resp := &model.AssessmentResponse{
		ID:             r.ID,
		InstrumentCode: r.Result.InstrumentCode,
		InstrumentName: in.Name,
		TotalScore:     r.Result.TotalScore,
		MaxScore:       r.Result.MaxScore,
		Severity: model.SeverityView{
			Label:       r.Result.Severity.Level,
			Category:    r.Result.Severity.Category,
			Description: r.Result.Severity.Description,
		},
		CompletedAt: r.Result.CompletedAt,
	}
	if elevated {
		resp.Recommendation = counselorRecommendation
	}
	return resp
}
