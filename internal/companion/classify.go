package companion

import "strings"

// Topic is the coarse subject of a conversation turn.
type Topic string

const (
	TopicAcademicStress  Topic = "academic_stress"
	TopicRelationships   Topic = "relationships"
	TopicAnxiety         Topic = "anxiety"
	TopicDepression      Topic = "depression"
	TopicSleepIssues     Topic = "sleep_issues"
	TopicEatingConcerns  Topic = "eating_concerns"
	TopicCrisis          Topic = "crisis"
	TopicGeneralWellness Topic = "general_wellness"
)

// RiskLevel grades how urgently a reply points at professional support.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type topicRule struct {
	topic Topic
	terms []string
}

// Evaluated in order; first match wins.
var topicRules = []topicRule{
	{TopicAcademicStress, []string{"academic", "study", "exam", "grade"}},
	{TopicRelationships, []string{"relationship", "friend", "family", "partner"}},
	{TopicAnxiety, []string{"anxiety", "anxious", "worry", "nervous"}},
	{TopicDepression, []string{"depression", "sad", "lonely", "hopeless"}},
	{TopicSleepIssues, []string{"sleep", "tired", "exhausted"}},
	{TopicEatingConcerns, []string{"eating", "appetite", "food"}},
	{TopicCrisis, []string{"crisis", "help", "emergency"}},
}

var (
	highRiskTerms   = []string{"suicide", "self-harm", "crisis", "988", "emergency"}
	mediumRiskTerms = []string{"counselor", "therapy", "professional help", "severe", "overwhelming"}
)

// Topics lists every topic label in priority order, general_wellness last.
func Topics() []Topic {
	out := make([]Topic, 0, len(topicRules)+1)
	for _, r := range topicRules {
		out = append(out, r.topic)
	}
	return append(out, TopicGeneralWellness)
}

// DetectTopic classifies the combined user message and reply.
func DetectTopic(userMessage, reply string) Topic {
	text := strings.ToLower(userMessage + " " + reply)
	for _, r := range topicRules {
		if containsAny(text, r.terms) {
			return r.topic
		}
	}
	return TopicGeneralWellness
}

// AssessRisk grades reply text. High-risk terms take precedence.
func AssessRisk(reply string) RiskLevel {
	text := strings.ToLower(reply)
	switch {
	case containsAny(text, highRiskTerms):
		return RiskHigh
	case containsAny(text, mediumRiskTerms):
		return RiskMedium
	default:
		return RiskLow
	}
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
