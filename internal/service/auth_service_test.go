package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mindbridge/internal/model"
)

func newTestAuth(users *fakeUserRepo) *AuthService {
	s := NewAuthService(users, "test-secret", zap.NewNop())
	s.bcryptCost = bcrypt.MinCost
	return s
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	auth := newTestAuth(users)

	user, err := auth.Register(ctx, model.RegisterRequest{
		Name:     "  Ada  ",
		Email:    "Ada@College.edu",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@college.edu", user.Email)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, model.RoleStudent, user.Role)

	resp, err := auth.Login(ctx, "ADA@college.edu", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(TokenTTL/time.Second), resp.ExpiresIn)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
	assert.Equal(t, model.RoleStudent, claims.Role)

	stored, _ := users.GetByID(ctx, user.ID)
	assert.NotNil(t, stored.LastLogin)
}

func TestRegisterValidation(t *testing.T) {
	auth := newTestAuth(newFakeUserRepo())

	_, err := auth.Register(context.Background(), model.RegisterRequest{
		Email:    "not-an-email",
		Password: "short",
		Role:     "superuser",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := map[string]bool{}
	for _, f := range verr.Fields {
		fields[f.Field] = true
	}
	assert.Equal(t, map[string]bool{"email": true, "password": true, "name": true, "role": true}, fields)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(newFakeUserRepo())
	req := model.RegisterRequest{Name: "Sam", Email: "sam@college.edu", Password: "password123"}

	_, err := auth.Register(ctx, req)
	require.NoError(t, err)
	_, err = auth.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(newFakeUserRepo())
	_, err := auth.Register(ctx, model.RegisterRequest{Name: "Sam", Email: "sam@college.edu", Password: "password123"})
	require.NoError(t, err)

	_, err = auth.Login(ctx, "sam@college.edu", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody@college.edu", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsExpiredAndForeign(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	auth := newTestAuth(users)
	_, err := auth.Register(ctx, model.RegisterRequest{Name: "Sam", Email: "sam@college.edu", Password: "password123"})
	require.NoError(t, err)

	resp, err := auth.Login(ctx, "sam@college.edu", "password123")
	require.NoError(t, err)

	other := NewAuthService(users, "another-secret", zap.NewNop())
	_, err = other.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	auth.now = func() time.Time { return time.Now().Add(TokenTTL + time.Hour) }
	_, err = auth.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateMood(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	auth := newTestAuth(users)
	user, err := auth.Register(ctx, model.RegisterRequest{Name: "Sam", Email: "sam@college.edu", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, auth.UpdateMood(ctx, user.ID, " Stressed "))
	stored, _ := users.GetByID(ctx, user.ID)
	assert.Equal(t, "stressed", stored.MentalHealth.CurrentMood)

	assert.ErrorIs(t, auth.UpdateMood(ctx, user.ID, "ecstatic"), ErrInvalidInput)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(newFakeUserRepo())

	admin, created, err := auth.EnsureAdmin(ctx, "admin@college.edu", "admin-password")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	again, created, err := auth.EnsureAdmin(ctx, "admin@college.edu", "admin-password")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)
}
