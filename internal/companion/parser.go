// Package companion turns free-text companion replies into structured chat
// responses: narrative, suggested actions, topic and risk level.
package companion

import (
	"strings"
)

// ActionsDelimiter introduces the trailing suggested-actions block.
const ActionsDelimiter = "SUGGESTED ACTIONS:"

// SuggestedAction is a follow-up the reply recommends to the student.
type SuggestedAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// ParsedResponse is the structured form of a companion reply.
type ParsedResponse struct {
	Narrative  string            `json:"narrative"`
	Actions    []SuggestedAction `json:"actions"`
	HasActions bool              `json:"hasActions"`
	Topic      Topic             `json:"topic"`
	RiskLevel  RiskLevel         `json:"riskLevel"`
}

// Parse splits rawText into narrative and actions and classifies it.
// userMessage only feeds topic detection. Parse never fails; unparseable
// fragments are dropped.
func Parse(userMessage, rawText string) ParsedResponse {
	narrative, block, found := strings.Cut(rawText, ActionsDelimiter)
	narrative = strings.TrimSpace(narrative)

	actions := []SuggestedAction{}
	if found {
		actions = parseActions(block)
	}

	return ParsedResponse{
		Narrative:  narrative,
		Actions:    actions,
		HasActions: len(actions) > 0,
		Topic:      DetectTopic(userMessage, narrative),
		RiskLevel:  AssessRisk(narrative),
	}
}

func parseActions(block string) []SuggestedAction {
	var out []SuggestedAction
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		if a, ok := parseActionLine(line); ok {
			out = append(out, a)
		}
	}
	if out == nil {
		return []SuggestedAction{}
	}
	return out
}

func parseActionLine(line string) (SuggestedAction, bool) {
	text := strings.TrimSpace(strings.TrimPrefix(line, "-"))

	var title, description string
	if before, after, ok := strings.Cut(text, ": "); ok {
		title = stripBrackets(before)
		description = strings.TrimSpace(after)
	} else {
		title = stripBrackets(text)
	}
	if title == "" {
		return SuggestedAction{}, false
	}

	return SuggestedAction{
		Title:       title,
		Description: description,
		Action:      ActionKey(title),
	}, true
}

var bracketStripper = strings.NewReplacer("[", "", "]", "")

func stripBrackets(s string) string {
	return strings.TrimSpace(bracketStripper.Replace(s))
}

// ActionKey lower-cases title and collapses each whitespace run to "_".
func ActionKey(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), "_")
}
