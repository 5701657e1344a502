package handler

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mindbridge/internal/model"
	"mindbridge/internal/service"
	"mindbridge/internal/transport/rest/middleware"
)

type authService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.PublicUser, error)
	Login(ctx context.Context, email, password string) (*model.LoginResponse, error)
	Me(ctx context.Context, userID string) (*model.PublicUser, error)
	UpdateMood(ctx context.Context, userID, mood string) error
	EnsureAdmin(ctx context.Context, email, password string) (*model.PublicUser, bool, error)
}

// AuthOptions configures the login cookie and the initial admin account.
type AuthOptions struct {
	SecureCookies bool
	AdminEmail    string
	AdminPassword string
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc authService
	opts    AuthOptions
	logger  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc authService, opts AuthOptions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, opts: opts, logger: logger}
}

// Register handles POST /v1/auth/register
// @Summary Register an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.RegisterRequest true "account"
// @Success 201 {object} model.PublicUser
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

// Login handles POST /v1/auth/login
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body model.LoginRequest true "credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(service.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /v1/auth/me. Signed-out callers get {"user": null}.
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}

	user, err := h.authSvc.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateMood handles PUT /v1/auth/me/mood
func (h *AuthHandler) UpdateMood(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateMoodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authSvc.UpdateMood(r.Context(), middleware.GetUserID(r.Context()), req.Mood); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InitAdmin handles POST /v1/init
func (h *AuthHandler) InitAdmin(w http.ResponseWriter, r *http.Request) {
	admin, created, err := h.authSvc.EnsureAdmin(r.Context(), h.opts.AdminEmail, h.opts.AdminPassword)
	if err != nil {
		h.logger.Error("initialize admin failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to initialize admin user")
		return
	}

	message := "Admin user initialized successfully"
	if !created {
		message = "Admin user already exists"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"admin":   admin,
	})
}
