package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mindbridge/internal/cache"
	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

var (
	ErrTherapistNotFound = errors.New("therapist not found")
	ErrTherapistExists   = errors.New("therapist with this email already exists")
)

// AdminService backs the counselor dashboard
type AdminService struct {
	users      repository.UserRepo
	sessions   *SessionService
	therapists repository.TherapistRepo
	analytics  cache.AnalyticsCache
	now        func() time.Time
	logger     *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(users repository.UserRepo, sessions *SessionService, therapists repository.TherapistRepo, analytics cache.AnalyticsCache, logger *zap.Logger) *AdminService {
	return &AdminService{
		users:      users,
		sessions:   sessions,
		therapists: therapists,
		analytics:  analytics,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// Dashboard gathers platform counts and counter histograms concurrently.
func (s *AdminService) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	d := &model.Dashboard{GeneratedAt: s.now()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.CountByRole(gctx, model.RoleStudent)
		d.TotalStudents = n
		return err
	})
	g.Go(func() error {
		n, err := s.sessions.CountActive(gctx)
		d.ActiveSessions = n
		return err
	})
	g.Go(func() error {
		n, err := s.therapists.Count(gctx)
		d.Therapists = n
		return err
	})

	histograms := []struct {
		group string
		dst   *map[string]int64
	}{
		{model.CounterSeverity, &d.Severity},
		{model.CounterTopic, &d.Topics},
		{model.CounterRisk, &d.RiskLevels},
		{model.CounterResource, &d.ResourceUsage},
		{model.CounterMood, &d.Moods},
	}
	for _, h := range histograms {
		h := h
		g.Go(func() error {
			counters, err := s.analytics.Counters(gctx, h.group)
			if err != nil {
				return err
			}
			if counters == nil {
				counters = map[string]int64{}
			}
			*h.dst = counters
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("build dashboard failed", zap.Error(err))
		return nil, err
	}
	return d, nil
}

// ListTherapists returns the directory, optionally filtered by status.
func (s *AdminService) ListTherapists(ctx context.Context, status model.TherapistStatus) ([]*model.Therapist, error) {
	if status != "" && status != model.TherapistActive && status != model.TherapistInactive {
		return nil, &ValidationError{Fields: []FieldError{{Field: "status", Message: "Status must be active or inactive"}}}
	}
	therapists, err := s.therapists.List(ctx, status)
	if err != nil {
		return nil, err
	}
	if therapists == nil {
		therapists = []*model.Therapist{}
	}
	return therapists, nil
}

// CreateTherapist adds a counselor to the directory as active.
func (s *AdminService) CreateTherapist(ctx context.Context, t model.Therapist) (*model.Therapist, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Email = strings.ToLower(strings.TrimSpace(t.Email))
	t.Specialization = strings.TrimSpace(t.Specialization)

	var v validator
	v.check(t.Name != "", "name", "Name is required")
	v.check(t.Email != "", "email", "Email is required")
	if t.Email != "" {
		v.check(emailPattern.MatchString(t.Email), "email", "Email is invalid")
	}
	v.check(t.Specialization != "", "specialization", "Specialization is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	t.ID = ""
	t.Status = model.TherapistActive
	if _, err := s.therapists.Create(ctx, &t); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTherapistExists
		}
		return nil, err
	}

	s.logger.Info("therapist created", zap.String("therapistId", t.ID))
	return &t, nil
}

// UpdateTherapistStatus activates or deactivates a therapist.
func (s *AdminService) UpdateTherapistStatus(ctx context.Context, id string, status model.TherapistStatus) (*model.Therapist, error) {
	if status != model.TherapistActive && status != model.TherapistInactive {
		return nil, &ValidationError{Fields: []FieldError{{Field: "status", Message: "Status must be active or inactive"}}}
	}

	ok, err := s.therapists.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTherapistNotFound
	}

	t, err := s.therapists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTherapistNotFound
	}
	return t, nil
}

// DeleteTherapist removes a therapist from the directory.
func (s *AdminService) DeleteTherapist(ctx context.Context, id string) error {
	ok, err := s.therapists.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTherapistNotFound
	}
	s.logger.Info("therapist deleted", zap.String("therapistId", id))
	return nil
}
