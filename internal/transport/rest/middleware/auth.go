package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mindbridge/internal/model"
)

type contextKey string

const (
	ClaimsKey  contextKey = "claims"
	SessionKey contextKey = "anonymousSession"
)

// SessionCookie carries the login token for browser clients.
const SessionCookie = "session"

// SessionTokenHeader identifies an anonymous caller.
const SessionTokenHeader = "X-Session-Token"

// TokenValidator validates login tokens
type TokenValidator interface {
	ValidateToken(token string) (*model.UserClaims, error)
}

// SessionResolver looks up anonymous sessions by client token
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.AnonymousSession, error)
}

// AuthMiddleware attaches the caller's identity to the request context
type AuthMiddleware struct {
	tokens   TokenValidator
	sessions SessionResolver
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens TokenValidator, sessions SessionResolver, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, logger: logger}
}

// Identify records a valid login token and a live anonymous session when
// present. It never rejects a request.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if token := ExtractToken(r); token != "" {
			if claims, err := m.tokens.ValidateToken(token); err == nil {
				ctx = context.WithValue(ctx, ClaimsKey, claims)
			}
		}

		if token := r.Header.Get(SessionTokenHeader); token != "" {
			session, err := m.sessions.Resolve(ctx, token)
			if err == nil {
				ctx = context.WithValue(ctx, SessionKey, session)
			} else {
				m.logger.Debug("anonymous session rejected", zap.Error(err))
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests without a valid login token
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from anyone but administrators
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if claims.Role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCaller accepts either a logged-in user or an anonymous session
func (m *AuthMiddleware) RequireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaims(r.Context()) == nil && GetSession(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "login or anonymous session required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClaims extracts login claims from context
func GetClaims(ctx context.Context) *model.UserClaims {
	if v, ok := ctx.Value(ClaimsKey).(*model.UserClaims); ok {
		return v
	}
	return nil
}

// GetUserID extracts the logged-in user's ID from context
func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.Subject
	}
	return ""
}

// GetSession extracts the anonymous session from context
func GetSession(ctx context.Context) *model.AnonymousSession {
	if v, ok := ctx.Value(SessionKey).(*model.AnonymousSession); ok {
		return v
	}
	return nil
}

// ExtractToken reads a bearer token, falling back to the session cookie.
func ExtractToken(r *http.Request) string {
	if token := extractBearerToken(r); token != "" {
		return token
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
