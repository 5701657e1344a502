package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindbridge/internal/assessment"
	"mindbridge/internal/cache"
	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// AnonymousSessionLifetime is how long an anonymous session stays usable.
const AnonymousSessionLifetime = 24 * time.Hour

// SessionService manages anonymous help sessions
type SessionService struct {
	repo      repository.SessionRepo
	cache     cache.SessionCache
	analytics cache.AnalyticsCache
	lifetime  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewSessionService creates a new anonymous session service
func NewSessionService(repo repository.SessionRepo, sessionCache cache.SessionCache, analytics cache.AnalyticsCache, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:      repo,
		cache:     sessionCache,
		analytics: analytics,
		lifetime:  AnonymousSessionLifetime,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// CreateAnonymous opens a session from minimal demographics.
func (s *SessionService) CreateAnonymous(ctx context.Context, req model.CreateAnonymousSessionRequest) (*model.AnonymousSession, error) {
	demo := model.Demographics{
		AgeRange:          strings.TrimSpace(req.AgeRange),
		AcademicYear:      strings.TrimSpace(req.AcademicYear),
		PreferredLanguage: strings.TrimSpace(req.PreferredLanguage),
	}

	var v validator
	v.check(demo.AgeRange != "", "ageRange", "Age range is required")
	v.check(demo.AcademicYear != "", "academicYear", "Academic year is required")
	v.check(demo.PreferredLanguage != "", "preferredLanguage", "Preferred language is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &model.AnonymousSession{
		ID:    uuid.New().String(),
		Token: token,
		Profile: model.SessionProfile{
			Demographics:     demo,
			ScreeningResults: map[string]*assessment.Result{},
			SessionPreferences: model.SessionPreferences{
				CommunicationMode: "chat",
				AnonymityLevel:    "high",
			},
		},
		IsActive:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.lifetime),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, session, s.lifetime); err != nil {
		s.logger.Warn("cache anonymous session failed", zap.String("sessionId", session.ID), zap.Error(err))
	}
	s.count(ctx, model.CounterResource, model.ResourceAnonymousSessions)

	s.logger.Info("anonymous session created",
		zap.String("sessionId", session.ID),
		zap.Time("expiresAt", session.ExpiresAt))
	return session, nil
}

// Resolve looks a session up by client token, Redis first.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.AnonymousSession, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.cache.Get(ctx, token)
	if err != nil {
		s.logger.Warn("session cache read failed", zap.Error(err))
		session = nil
	}
	if session == nil {
		session, err = s.repo.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if session == nil {
			return nil, ErrSessionNotFound
		}
		if ttl := session.ExpiresAt.Sub(s.now()); session.IsActive && ttl > 0 {
			if err := s.cache.Set(ctx, session, ttl); err != nil {
				s.logger.Warn("cache anonymous session failed", zap.String("sessionId", session.ID), zap.Error(err))
			}
		}
	}

	if !session.IsActive || session.Expired(s.now()) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// RecordScreening stores result as the session's latest for that instrument.
func (s *SessionService) RecordScreening(ctx context.Context, session *model.AnonymousSession, result *assessment.Result) error {
	if err := s.repo.SetScreeningResult(ctx, session.ID, result); err != nil {
		return err
	}
	if session.Profile.ScreeningResults == nil {
		session.Profile.ScreeningResults = map[string]*assessment.Result{}
	}
	session.Profile.ScreeningResults[result.InstrumentCode] = result
	if ttl := session.ExpiresAt.Sub(s.now()); ttl > 0 {
		if err := s.cache.Set(ctx, session, ttl); err != nil {
			s.logger.Warn("refresh session cache failed", zap.String("sessionId", session.ID), zap.Error(err))
		}
	}
	return nil
}

// End deactivates the session behind token.
func (s *SessionService) End(ctx context.Context, token string) error {
	session, err := s.Resolve(ctx, token)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, session.ID); err != nil {
		return err
	}
	return s.cache.Delete(ctx, token)
}

// CountActive returns the number of live sessions.
func (s *SessionService) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx, s.now())
}

func (s *SessionService) count(ctx context.Context, group, field string) {
	if err := s.analytics.Increment(ctx, group, field); err != nil {
		s.logger.Warn("analytics increment failed", zap.String("group", group), zap.String("field", field), zap.Error(err))
	}
}

// newSessionToken returns 32 random bytes, hex encoded.
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
