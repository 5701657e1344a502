package model

import (
	"time"

	"mindbridge/internal/assessment"
)

// Demographics is the minimal, non-identifying data an anonymous student gives.
type Demographics struct {
	AgeRange          string `json:"ageRange" bson:"ageRange"`
	AcademicYear      string `json:"academicYear" bson:"academicYear"`
	PreferredLanguage string `json:"preferredLanguage" bson:"preferredLanguage"`
}

type SessionPreferences struct {
	CommunicationMode string `json:"communicationMode" bson:"communicationMode"`
	AnonymityLevel    string `json:"anonymityLevel" bson:"anonymityLevel"`
}

type SessionProfile struct {
	Demographics       Demographics                  `json:"demographics" bson:"demographics"`
	ScreeningResults   map[string]*assessment.Result `json:"screeningResults" bson:"screeningResults"` // instrument code -> latest
	SessionPreferences SessionPreferences            `json:"sessionPreferences" bson:"sessionPreferences"`
}

// AnonymousSession is a short-lived identity for help without an account.
type AnonymousSession struct {
	ID        string         `json:"id" bson:"_id"`
	Token     string         `json:"-" bson:"token"`
	Profile   SessionProfile `json:"profile" bson:"profile"`
	IsActive  bool           `json:"isActive" bson:"isActive"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time      `json:"expiresAt" bson:"expiresAt"`
}

// Expired reports whether the session is past its lifetime at now.
func (s *AnonymousSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// CreateAnonymousSessionRequest is the request body for POST /v1/sessions/anonymous
type CreateAnonymousSessionRequest struct {
	AgeRange          string `json:"ageRange"`
	AcademicYear      string `json:"academicYear"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// CreateAnonymousSessionResponse carries the client token.
type CreateAnonymousSessionResponse struct {
	Message      string    `json:"message"`
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
