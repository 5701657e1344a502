package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mindbridge/internal/assessment"
	"mindbridge/internal/model"
)

type sessionFixture struct {
	repo      *fakeSessionRepo
	cache     *fakeSessionCache
	analytics *fakeAnalytics
	svc       *SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		repo:      newFakeSessionRepo(),
		cache:     newFakeSessionCache(),
		analytics: newFakeAnalytics(),
	}
	f.svc = NewSessionService(f.repo, f.cache, f.analytics, zap.NewNop())
	return f
}

var validDemographics = model.CreateAnonymousSessionRequest{
	AgeRange:          "18-22",
	AcademicYear:      "sophomore",
	PreferredLanguage: "en",
}

func TestCreateAnonymousSession(t *testing.T) {
	f := newSessionFixture()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	s, err := f.svc.CreateAnonymous(context.Background(), validDemographics)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Len(t, s.Token, 64)
	assert.True(t, s.IsActive)
	assert.Equal(t, now.Add(AnonymousSessionLifetime), s.ExpiresAt)
	assert.Equal(t, "chat", s.Profile.SessionPreferences.CommunicationMode)
	assert.Equal(t, "high", s.Profile.SessionPreferences.AnonymityLevel)
	assert.NotNil(t, s.Profile.ScreeningResults)
	assert.Equal(t, int64(1), f.analytics.get(model.CounterResource, model.ResourceAnonymousSessions))

	cached, _ := f.cache.Get(context.Background(), s.Token)
	assert.NotNil(t, cached)
}

func TestCreateAnonymousSessionRequiresFields(t *testing.T) {
	f := newSessionFixture()
	_, err := f.svc.CreateAnonymous(context.Background(), model.CreateAnonymousSessionRequest{AgeRange: "18-22"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestResolveFallsBackToRepo(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	s, err := f.svc.CreateAnonymous(ctx, validDemographics)
	require.NoError(t, err)

	require.NoError(t, f.cache.Delete(ctx, s.Token))

	got, err := f.svc.Resolve(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	recached, _ := f.cache.Get(ctx, s.Token)
	assert.NotNil(t, recached, "repo hit should repopulate the cache")
}

func TestResolveErrors(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()

	_, err := f.svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.svc.Resolve(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	s, err := f.svc.CreateAnonymous(ctx, validDemographics)
	require.NoError(t, err)
	f.svc.now = func() time.Time { return time.Now().UTC().Add(25 * time.Hour) }
	_, err = f.svc.Resolve(ctx, s.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestEndSession(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	s, err := f.svc.CreateAnonymous(ctx, validDemographics)
	require.NoError(t, err)

	require.NoError(t, f.svc.End(ctx, s.Token))
	_, err = f.svc.Resolve(ctx, s.Token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	n, err := f.svc.CountActive(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecordScreeningKeepsLatestPerInstrument(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture()
	s, err := f.svc.CreateAnonymous(ctx, validDemographics)
	require.NoError(t, err)

	engine := assessment.DefaultEngine()
	first, err := engine.Compute(assessment.CodeGAD7, []int{0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	second, err := engine.Compute(assessment.CodeGAD7, []int{3, 3, 3, 3, 3, 3, 3})
	require.NoError(t, err)

	require.NoError(t, f.svc.RecordScreening(ctx, s, first))
	require.NoError(t, f.svc.RecordScreening(ctx, s, second))

	got, err := f.svc.Resolve(ctx, s.Token)
	require.NoError(t, err)
	require.Contains(t, got.Profile.ScreeningResults, assessment.CodeGAD7)
	assert.Equal(t, 21, got.Profile.ScreeningResults[assessment.CodeGAD7].TotalScore)
}
