// Package app connects the backing stores and assembles the services shared
// by the server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mindbridge/internal/assessment"
	"mindbridge/internal/cache"
	"mindbridge/internal/config"
	"mindbridge/internal/llm"
	"mindbridge/internal/repository"
	"mindbridge/internal/service"
)

const pingTimeout = 5 * time.Second

type App struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client

	UserRepo       repository.UserRepo
	SessionRepo    repository.SessionRepo
	AssessmentRepo repository.AssessmentRepo
	ChatLogRepo    repository.ChatLogRepo
	ForumRepo      repository.ForumRepo
	TherapistRepo  repository.TherapistRepo

	SessionCache   cache.SessionCache
	AnalyticsCache cache.AnalyticsCache
	TrendingCache  cache.TrendingCache

	Auth        *service.AuthService
	Sessions    *service.SessionService
	Assessments *service.AssessmentService
	Chat        *service.ChatService
	Forum       *service.ForumService
	Admin       *service.AdminService
}

// Open connects to MongoDB and Redis, ensures indexes and builds every
// service. Call Close when done.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	a := &App{Mongo: mongoClient, DB: mongoClient.Database(cfg.MongoDB), Redis: rdb}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(pingCtx)
	g.Go(func() error {
		if err := mongoClient.Ping(gctx, nil); err != nil {
			return fmt.Errorf("ping mongo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := rdb.Ping(gctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		a.Close(context.Background())
		return nil, err
	}
	logger.Info("connected to MongoDB and Redis", zap.String("db", cfg.MongoDB), zap.String("redis", cfg.RedisAddr))

	if err := repository.EnsureIndexes(ctx, a.DB); err != nil {
		a.Close(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	a.wire(cfg, logger)
	return a, nil
}

func (a *App) wire(cfg *config.Config, logger *zap.Logger) {
	// Initialize repositories
	a.UserRepo = repository.NewUserRepo(a.DB)
	a.SessionRepo = repository.NewSessionRepo(a.DB)
	a.AssessmentRepo = repository.NewAssessmentRepo(a.DB)
	a.ChatLogRepo = repository.NewChatLogRepo(a.DB)
	a.ForumRepo = repository.NewForumRepo(a.DB)
	a.TherapistRepo = repository.NewTherapistRepo(a.DB)

	// Initialize caches
	a.SessionCache = cache.NewSessionCache(a.Redis)
	a.AnalyticsCache = cache.NewAnalyticsCache(a.Redis)
	a.TrendingCache = cache.NewTrendingCache(a.Redis)

	// Initialize services
	a.Auth = service.NewAuthService(a.UserRepo, cfg.JWTSecret, logger.Named("auth"))
	a.Sessions = service.NewSessionService(a.SessionRepo, a.SessionCache, a.AnalyticsCache, logger.Named("sessions"))
	a.Assessments = service.NewAssessmentService(assessment.DefaultEngine(), a.AssessmentRepo, a.Sessions, a.AnalyticsCache, logger.Named("assessments"))
	gemini := llm.NewGemini(cfg.AI.APIKey, cfg.AI.Timeout())
	a.Chat = service.NewChatService(cfg.AI, gemini, a.ChatLogRepo, a.UserRepo, a.AnalyticsCache, logger.Named("chat"))
	a.Forum = service.NewForumService(a.ForumRepo, a.TrendingCache, a.AnalyticsCache, logger.Named("forum"))
	a.Admin = service.NewAdminService(a.UserRepo, a.Sessions, a.TherapistRepo, a.AnalyticsCache, logger.Named("admin"))
}

// SetBroadcaster routes realtime events from every service to b.
func (a *App) SetBroadcaster(b service.Broadcaster) {
	a.Assessments.SetBroadcaster(b)
	a.Chat.SetBroadcaster(b)
	a.Forum.SetBroadcaster(b)
}

// Close disconnects from MongoDB and Redis.
func (a *App) Close(ctx context.Context) error {
	redisErr := a.Redis.Close()
	if err := a.Mongo.Disconnect(ctx); err != nil {
		return err
	}
	return redisErr
}
