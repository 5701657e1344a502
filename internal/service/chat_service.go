package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindbridge/internal/cache"
	"mindbridge/internal/companion"
	"mindbridge/internal/config"
	"mindbridge/internal/model"
	"mindbridge/internal/repository"
)

var (
	ErrNoMessages      = errors.New("messages are required")
	ErrAllModelsFailed = errors.New("all models failed")
)

// Generator produces free text for a prompt with a named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Fallback replies
const (
	notConfiguredMessage = "I'm sorry, but my AI service is not properly configured. Please contact support."
	defaultFallback      = "I'm here to listen and support you. It seems I'm having trouble connecting right now, but please know that your feelings are important. If you're in crisis, please reach out to the 988 Suicide & Crisis Lifeline or contact emergency services."
	apiKeyFallback       = "I'm experiencing a configuration issue. Please try again in a moment or contact support if the problem persists."
	quotaFallback        = "I'm temporarily unavailable due to high usage. Please try again in a few minutes."
)

// Caller identifies who is chatting. Either field may be empty.
type Caller struct {
	UserID    string
	SessionID string
}

// ChatService runs the AI companion conversation
type ChatService struct {
	cfg         *config.AIConfig
	gen         Generator
	logs        repository.ChatLogRepo
	users       repository.UserRepo
	analytics   cache.AnalyticsCache
	broadcaster Broadcaster
	now         func() time.Time
	logger      *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(cfg *config.AIConfig, gen Generator, logs repository.ChatLogRepo, users repository.UserRepo, analytics cache.AnalyticsCache, logger *zap.Logger) *ChatService {
	return &ChatService{
		cfg:         cfg,
		gen:         gen,
		logs:        logs,
		users:       users,
		analytics:   analytics,
		broadcaster: nopBroadcaster{},
		now:         time.Now,
		logger:      logger,
	}
}

// SetBroadcaster sets the broadcaster for high-risk alerts
func (s *ChatService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Reply answers the latest message. A failed generation is not an error:
// the student gets a supportive fallback reply instead.
func (s *ChatService) Reply(ctx context.Context, caller Caller, req model.ChatRequest) (*model.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, ErrNoMessages
	}
	now := s.now()

	if !s.cfg.IsEnabled() {
		s.logger.Error("GEMINI_API_KEY is not set")
		return s.fallback(now, notConfiguredMessage), nil
	}

	userMessage := req.Messages[len(req.Messages)-1].Content
	uctx := s.resolveContext(req.UserContext, caller, now)

	prompt, err := buildCompanionPrompt(userMessage, uctx, companion.ActionsDelimiter)
	if err != nil {
		return nil, err
	}

	text, modelName, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Error("companion generation failed", zap.String("sessionId", uctx.SessionID), zap.Error(err))
		return s.fallback(now, fallbackMessage(err)), nil
	}

	parsed := companion.Parse(userMessage, text)
	s.record(ctx, caller, uctx, parsed, modelName, now)

	return &model.ChatResponse{
		ID:                messageID(now),
		Role:              "assistant",
		Content:           parsed.Narrative,
		SuggestedActions:  parsed.Actions,
		ContextualRouting: parsed.HasActions,
		Metadata: &model.ChatMetadata{
			DetectedTopic: parsed.Topic,
			RiskLevel:     parsed.RiskLevel,
			SessionID:     uctx.SessionID,
			Model:         modelName,
			Timestamp:     now.UTC(),
		},
	}, nil
}

// generate tries each configured model in order and returns the first
// success. If all fail, the last error is returned.
func (s *ChatService) generate(ctx context.Context, prompt string) (string, string, error) {
	var lastErr error
	for _, m := range s.cfg.Models {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		s.logger.Debug("trying model", zap.String("model", m))
		text, err := s.gen.Generate(ctx, m, prompt)
		if err != nil {
			s.logger.Warn("model failed", zap.String("model", m), zap.Error(err))
			lastErr = err
			continue
		}
		s.logger.Info("companion reply generated", zap.String("model", m), zap.Int("chars", len(text)))
		return text, m, nil
	}
	if lastErr == nil {
		lastErr = ErrAllModelsFailed
	}
	return "", "", lastErr
}

func (s *ChatService) resolveContext(in *model.UserContext, caller Caller, now time.Time) model.UserContext {
	var c model.UserContext
	if in != nil {
		c = *in
	}
	if c.CurrentMood == "" {
		c.CurrentMood = "unknown"
	}
	if c.RecentActivity == "" {
		c.RecentActivity = "none"
	}
	if c.RiskLevel == "" {
		c.RiskLevel = string(companion.RiskLow)
	}
	if c.Preferences == "" {
		c.Preferences = "none"
	}
	if c.SessionID == "" {
		c.SessionID = caller.SessionID
	}
	if c.SessionID == "" {
		c.SessionID = fmt.Sprintf("session-%d", now.UnixMilli())
	}
	if c.ConversationTopic == "" {
		c.ConversationTopic = "general"
	}
	if c.LastInteraction == "" {
		c.LastInteraction = now.UTC().Format(time.RFC3339)
	}
	return c
}

// record keeps the classification for the dashboard. Failures are logged
// and never reach the student.
func (s *ChatService) record(ctx context.Context, caller Caller, uctx model.UserContext, parsed companion.ParsedResponse, modelName string, now time.Time) {
	log := &model.ChatLog{
		SessionID:  uctx.SessionID,
		UserID:     caller.UserID,
		Topic:      parsed.Topic,
		RiskLevel:  parsed.RiskLevel,
		Model:      modelName,
		HasActions: parsed.HasActions,
		CreatedAt:  now.UTC(),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		s.logger.Warn("save chat log failed", zap.Error(err))
	}

	s.count(ctx, model.CounterTopic, string(parsed.Topic))
	s.count(ctx, model.CounterRisk, string(parsed.RiskLevel))
	s.count(ctx, model.CounterResource, model.ResourceChatbot)
	if uctx.CurrentMood != "unknown" {
		s.count(ctx, model.CounterMood, strings.ToLower(uctx.CurrentMood))
	}

	if caller.UserID != "" {
		if err := s.users.RecordChatSession(ctx, caller.UserID, now.UTC()); err != nil {
			s.logger.Warn("record chat session failed", zap.String("userId", caller.UserID), zap.Error(err))
		}
	}

	if parsed.RiskLevel == companion.RiskHigh {
		s.broadcaster.Broadcast(ChannelAdmin, MsgAlert, model.Alert{
			Kind:      "high_risk_chat",
			SessionID: uctx.SessionID,
			Detail:    fmt.Sprintf("high risk reply on topic %s", parsed.Topic),
			CreatedAt: now.UTC(),
		})
	}
}

func (s *ChatService) count(ctx context.Context, group, field string) {
	if err := s.analytics.Increment(ctx, group, field); err != nil {
		s.logger.Warn("analytics increment failed", zap.String("group", group), zap.String("field", field), zap.Error(err))
	}
}

func (s *ChatService) fallback(now time.Time, content string) *model.ChatResponse {
	return &model.ChatResponse{
		ID:      messageID(now),
		Role:    "assistant",
		Content: content,
	}
}

func fallbackMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY"):
		return apiKeyFallback
	case strings.Contains(msg, "quota"):
		return quotaFallback
	default:
		return defaultFallback
	}
}

func messageID(now time.Time) string {
	return fmt.Sprintf("msg-%d", now.UnixMilli())
}
