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

type assessmentFixture struct {
	sessions  *sessionFixture
	repo      *fakeAssessmentRepo
	bc        *recordingBroadcaster
	svc       *AssessmentService
	completed time.Time
}

func newAssessmentFixture() *assessmentFixture {
	f := &assessmentFixture{
		sessions:  newSessionFixture(),
		repo:      &fakeAssessmentRepo{},
		bc:        &recordingBroadcaster{},
		completed: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
	}
	engine := assessment.DefaultEngine().WithClock(func() time.Time { return f.completed })
	f.svc = NewAssessmentService(engine, f.repo, f.sessions.svc, f.sessions.analytics, zap.NewNop())
	f.svc.SetBroadcaster(f.bc)
	return f
}

func TestSubmitForUser(t *testing.T) {
	f := newAssessmentFixture()
	owner := model.Owner{Kind: model.OwnerUser, ID: "user-1"}

	resp, err := f.svc.Submit(context.Background(), owner, nil, assessment.CodeGAD7, []int{1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)

	assert.Equal(t, "GAD-7", resp.InstrumentName)
	assert.Equal(t, 7, resp.TotalScore)
	assert.Equal(t, 21, resp.MaxScore)
	assert.Equal(t, "Mild", resp.Severity.Label)
	assert.Equal(t, f.completed, resp.CompletedAt)
	assert.Empty(t, resp.Recommendation)
	assert.Empty(t, f.bc.of(ChannelAdmin, MsgAlert))

	require.Len(t, f.repo.records, 1)
	assert.Equal(t, owner, f.repo.records[0].Owner)
	assert.Equal(t, int64(1), f.sessions.analytics.get(model.CounterSeverity, "gad7:Mild"))
	assert.Equal(t, int64(1), f.sessions.analytics.get(model.CounterResource, model.ResourceAssessments))
}

func TestSubmitSevereRaisesAlert(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture()
	session, err := f.sessions.svc.CreateAnonymous(ctx, validDemographics)
	require.NoError(t, err)
	owner := model.Owner{Kind: model.OwnerAnonymous, ID: session.ID}

	resp, err := f.svc.Submit(ctx, owner, session, assessment.CodePHQ9, []int{3, 3, 3, 3, 3, 3, 3, 3, 3})
	require.NoError(t, err)

	assert.Equal(t, 27, resp.TotalScore)
	assert.Equal(t, "Severe", resp.Severity.Label)
	assert.NotEmpty(t, resp.Recommendation)

	alerts := f.bc.of(ChannelAdmin, MsgAlert)
	require.Len(t, alerts, 1)
	alert := alerts[0].payload.(model.Alert)
	assert.Equal(t, "severe_assessment", alert.Kind)
	assert.Equal(t, session.ID, alert.SessionID)

	stored, err := f.sessions.svc.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, 27, stored.Profile.ScreeningResults[assessment.CodePHQ9].TotalScore)
}

func TestSubmitErrors(t *testing.T) {
	f := newAssessmentFixture()
	owner := model.Owner{Kind: model.OwnerUser, ID: "user-1"}

	_, err := f.svc.Submit(context.Background(), owner, nil, "bdi", []int{1})
	assert.ErrorIs(t, err, assessment.ErrUnknownInstrument)

	_, err = f.svc.Submit(context.Background(), owner, nil, assessment.CodePHQ9, []int{1, 2})
	assert.ErrorIs(t, err, assessment.ErrIncompleteAnswers)

	_, err = f.svc.Submit(context.Background(), owner, nil, assessment.CodeGHQ12, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 0, 1, 2})
	assert.ErrorIs(t, err, assessment.ErrInvalidAnswerValue)

	assert.Empty(t, f.repo.records)
}

func TestHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newAssessmentFixture()
	owner := model.Owner{Kind: model.OwnerUser, ID: "user-1"}
	other := model.Owner{Kind: model.OwnerUser, ID: "user-2"}

	_, err := f.svc.Submit(ctx, owner, nil, assessment.CodeGAD7, []int{0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, other, nil, assessment.CodeGAD7, []int{1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, owner, nil, assessment.CodeGAD7, []int{2, 2, 2, 2, 2, 2, 2})
	require.NoError(t, err)

	history, err := f.svc.History(ctx, owner, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 14, history[0].TotalScore)
	assert.Equal(t, 0, history[1].TotalScore)

	one, err := f.svc.History(ctx, owner, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}
