package model

import (
	"time"

	"mindbridge/internal/assessment"
)

// OwnerKind tells whether an assessment belongs to an account or an anonymous session.
type OwnerKind string

const (
	OwnerUser      OwnerKind = "user"
	OwnerAnonymous OwnerKind = "anonymous"
)

// Owner identifies who took an assessment.
type Owner struct {
	Kind OwnerKind `json:"kind" bson:"kind"`
	ID   string    `json:"id" bson:"id"`
}

// AssessmentRecord is a persisted assessment result
type AssessmentRecord struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	Owner          Owner             `json:"owner" bson:"owner"`
	InstrumentName string            `json:"instrumentName" bson:"instrumentName"`
	Answers        []int             `json:"answers" bson:"answers"`
	Result         assessment.Result `json:"result" bson:"result"`
}

// SubmitAssessmentRequest is the request body for POST /v1/assessments/{code}
type SubmitAssessmentRequest struct {
	Answers []int `json:"answers"`
}

// AssessmentResponse is returned after scoring.
type AssessmentResponse struct {
	ID             string       `json:"id"`
	InstrumentCode string       `json:"instrumentCode"`
	InstrumentName string       `json:"instrumentName"`
	TotalScore     int          `json:"totalScore"`
	MaxScore       int          `json:"maxScore"`
	Severity       SeverityView `json:"severity"`
	CompletedAt    time.Time    `json:"completedAt"`
	Recommendation string       `json:"recommendation,omitempty"`
}

// SeverityView is the client view of a severity band.
type SeverityView struct {
	Label       string `json:"label"`
	Category    string `json:"category"`
	Description string `json:"description"`
}
