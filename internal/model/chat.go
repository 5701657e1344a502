package model

import (
	"time"

	"mindbridge/internal/companion"
)

// ChatMessage is one turn in the client-side conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserContext is what the client knows about the student right now.
type UserContext struct {
	CurrentMood       string `json:"currentMood,omitempty"`
	RecentActivity    string `json:"recentActivity,omitempty"`
	RiskLevel         string `json:"riskLevel,omitempty"`
	Preferences       string `json:"preferences,omitempty"`
	SessionID         string `json:"sessionId,omitempty"`
	ConversationTopic string `json:"conversationTopic,omitempty"`
	LastInteraction   string `json:"lastInteraction,omitempty"`
}

// ChatRequest is the request body for POST /v1/chat
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	UserContext *UserContext  `json:"userContext,omitempty"`
}

// ChatMetadata describes how the reply was classified.
type ChatMetadata struct {
	DetectedTopic companion.Topic     `json:"detectedTopic"`
	RiskLevel     companion.RiskLevel `json:"riskLevel"`
	SessionID     string              `json:"sessionId"`
	Model         string              `json:"model,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// ChatResponse is the assistant turn returned to the client. Fallback
// replies carry no actions and no metadata.
type ChatResponse struct {
	ID                string                      `json:"id"`
	Role              string                      `json:"role"`
	Content           string                      `json:"content"`
	SuggestedActions  []companion.SuggestedAction `json:"suggestedActions,omitempty"`
	ContextualRouting bool                        `json:"contextualRouting"`
	Metadata          *ChatMetadata               `json:"metadata,omitempty"`
}

// ChatLog is the persisted trace of one turn. Message text is not stored.
type ChatLog struct {
	ID         string              `json:"id" bson:"_id,omitempty"`
	SessionID  string              `json:"sessionId" bson:"sessionId"`
	UserID     string              `json:"userId,omitempty" bson:"userId,omitempty"`
	Topic      companion.Topic     `json:"topic" bson:"topic"`
	RiskLevel  companion.RiskLevel `json:"riskLevel" bson:"riskLevel"`
	Model      string              `json:"model" bson:"model"`
	HasActions bool                `json:"hasActions" bson:"hasActions"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
}
