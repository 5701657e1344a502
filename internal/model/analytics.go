package model

import "time"

// Counter groups tracked by the analytics cache.
const (
	CounterSeverity = "severity" // field: "<instrument>:<level>"
	CounterTopic    = "topic"
	CounterRisk     = "risk"
	CounterResource = "resource" // chatbot, anonymous_sessions, peer_forum, assessments
	CounterMood     = "mood"
)

// Resource usage fields
const (
	ResourceChatbot           = "chatbot"
	ResourceAnonymousSessions = "anonymous_sessions"
	ResourcePeerForum         = "peer_forum"
	ResourceAssessments       = "assessments"
)

// Dashboard is the admin analytics overview.
type Dashboard struct {
	TotalStudents  int64            `json:"totalStudents"`
	ActiveSessions int64            `json:"activeSessions"`
	Therapists     int64            `json:"therapists"`
	Severity       map[string]int64 `json:"severity"`
	Topics         map[string]int64 `json:"topics"`
	RiskLevels     map[string]int64 `json:"riskLevels"`
	ResourceUsage  map[string]int64 `json:"resourceUsage"`
	Moods          map[string]int64 `json:"moods"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}

// Alert is pushed to admin dashboards over the websocket.
type Alert struct {
	Kind      string    `json:"kind"` // high_risk_chat, severe_assessment
	SessionID string    `json:"sessionId,omitempty"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}
