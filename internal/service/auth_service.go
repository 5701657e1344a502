package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenTTL is the lifetime of a login token and its cookie.
const TokenTTL = 7 * 24 * time.Hour

const defaultBcryptCost = 12

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

var moods = map[string]bool{
	"happy": true, "neutral": true, "stressed": true, "anxious": true, "sad": true, "angry": true,
}

// AuthService handles account registration, login and token validation
type AuthService struct {
	users      repository.UserRepo
	jwtSecret  []byte
	bcryptCost int
	now        func() time.Time
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, jwtSecret string, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: defaultBcryptCost,
		now:        time.Now,
		logger:     logger,
	}
}

// Register validates the request and creates a student (or admin) account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.PublicUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	var v validator
	v.check(emailPattern.MatchString(email), "email", "Invalid email address")
	v.check(utf8.RuneCountInString(req.Password) >= 8, "password", "Password must be at least 8 characters")
	v.check(name != "", "name", "Name is required")
	v.check(utf8.RuneCountInString(name) <= 100, "name", "Name cannot be more than 100 characters")
	v.check(role.Valid(), "role", "Role must be student or admin")
	if err := v.err(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("user registered", zap.String("userId", user.ID), zap.String("role", string(user.Role)))
	pub := user.Public()
	return &pub, nil
}

// Login checks credentials and issues a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var v validator
	v.check(emailPattern.MatchString(email), "email", "Invalid email address")
	v.check(utf8.RuneCountInString(password) >= 8, "password", "Password must be at least 8 characters")
	if err := v.err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		s.logger.Warn("update last login failed", zap.String("userId", user.ID), zap.Error(err))
	}

	return &model.LoginResponse{
		Token:     token,
		ExpiresIn: int64(TokenTTL / time.Second),
		User:      user.Public(),
	}, nil
}

func (s *AuthService) issueToken(user *model.User) (string, error) {
	now := s.now()
	claims := &model.UserClaims{
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a login JWT and returns its claims
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Me returns the current account, or nil if it no longer exists.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}
	pub := user.Public()
	return &pub, nil
}

// UpdateMood records the student's self-reported mood.
func (s *AuthService) UpdateMood(ctx context.Context, userID, mood string) error {
	mood = strings.ToLower(strings.TrimSpace(mood))
	var v validator
	v.check(moods[mood], "mood", "Mood must be one of happy, neutral, stressed, anxious, sad, angry")
	if err := v.err(); err != nil {
		return err
	}
	return s.users.UpdateMood(ctx, userID, mood, s.now())
}

// EnsureAdmin creates the initial admin account unless it already exists.
// The bool reports whether a new account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (*model.PublicUser, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		pub := existing.Public()
		return &pub, false, nil
	}

	user, err := s.Register(ctx, model.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "System Administrator",
		Role:     model.RoleAdmin,
	})
	if errors.Is(err, ErrEmailTaken) {
		// lost a race with another initializer
		return s.EnsureAdmin(ctx, email, password)
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
