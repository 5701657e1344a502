package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
	"go.uber.org/zap"

	"mindbridge/internal/resources"
	"mindbridge/internal/service"
	"mindbridge/internal/transport/rest/handler"
	"mindbridge/internal/transport/rest/middleware"
	"mindbridge/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService       *service.AuthService
	SessionService    *service.SessionService
	AssessmentService *service.AssessmentService
	ChatService       *service.ChatService
	ForumService      *service.ForumService
	AdminService      *service.AdminService
	Catalog           *resources.Catalog
	WSHub             *ws.Hub
	AuthOptions       handler.AuthOptions
	AllowedOrigins    string
	Logger            *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.AuthOptions, c.Logger)
	sessionHandler := handler.NewSessionHandler(c.SessionService, c.Logger)
	assessmentHandler := handler.NewAssessmentHandler(c.AssessmentService, c.Logger)
	chatHandler := handler.NewChatHandler(c.ChatService, c.Logger)
	forumHandler := handler.NewForumHandler(c.ForumService, c.Logger)
	adminHandler := handler.NewAdminHandler(c.AdminService, c.Logger)
	resourceHandler := handler.NewResourceHandler(c.Catalog, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.AllowedOrigins, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, c.SessionService, c.Logger)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.AllowedOrigins))
	r.Use(middleware.RequestLogger(c.Logger))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(authMW.Identify)

	// Public routes
	v1.HandleFunc("/init", authHandler.InitAdmin).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/me", authHandler.Me).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/anonymous", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/assessments", assessmentHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/chat", chatHandler.Reply).Methods("POST", "OPTIONS")
	v1.HandleFunc("/forum/posts", forumHandler.ListPosts).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forum/trending", forumHandler.Trending).Methods("GET", "OPTIONS")
	v1.HandleFunc("/forum/posts/{postId}", forumHandler.GetPost).Methods("GET", "OPTIONS")
	v1.HandleFunc("/resources", resourceHandler.List).Methods("GET", "OPTIONS")

	// WebSocket routes (admin token in query param)
	v1.HandleFunc("/ws/admin", wsHandler.AdminWS).Methods("GET")
	v1.HandleFunc("/ws/forum", wsHandler.ForumWS).Methods("GET")

	// Student or anonymous session routes
	callerRoutes := v1.NewRoute().Subrouter()
	callerRoutes.Use(authMW.RequireCaller)

	callerRoutes.HandleFunc("/sessions/anonymous", sessionHandler.Get).Methods("GET", "OPTIONS")
	callerRoutes.HandleFunc("/sessions/anonymous", sessionHandler.End).Methods("DELETE", "OPTIONS")
	callerRoutes.HandleFunc("/assessments/history", assessmentHandler.History).Methods("GET", "OPTIONS")
	callerRoutes.HandleFunc("/assessments/{code}", assessmentHandler.Submit).Methods("POST", "OPTIONS")
	callerRoutes.HandleFunc("/forum/posts", forumHandler.CreatePost).Methods("POST", "OPTIONS")
	callerRoutes.HandleFunc("/forum/posts/{postId}/replies", forumHandler.AddReply).Methods("POST", "OPTIONS")
	callerRoutes.HandleFunc("/forum/posts/{postId}/like", forumHandler.Like).Methods("POST", "OPTIONS")

	// Public instrument detail, after /assessments/history
	v1.HandleFunc("/assessments/{code}", assessmentHandler.Get).Methods("GET", "OPTIONS")

	// Account routes (require login)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/auth/me/mood", authHandler.UpdateMood).Methods("PUT", "OPTIONS")

	// Admin routes (require admin role)
	adminRoutes := v1.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/analytics", adminHandler.Dashboard).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/therapists", adminHandler.ListTherapists).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/therapists", adminHandler.CreateTherapist).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/therapists/{id}/status", adminHandler.UpdateTherapistStatus).Methods("PUT", "OPTIONS")
	adminRoutes.HandleFunc("/therapists/{id}", adminHandler.DeleteTherapist).Methods("DELETE", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.SessionTokenHeader)
			if allowedOrigins != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
