package model

import "time"

type TherapistStatus string

const (
	TherapistActive   TherapistStatus = "active"
	TherapistInactive TherapistStatus = "inactive"
)

// Therapist is a counselor listed in the admin directory
type Therapist struct {
	ID             string          `json:"id" bson:"_id,omitempty"`
	Name           string          `json:"name" bson:"name"`
	Email          string          `json:"email" bson:"email"`
	Specialization string          `json:"specialization" bson:"specialization"`
	Experience     string          `json:"experience,omitempty" bson:"experience,omitempty"`
	Availability   string          `json:"availability,omitempty" bson:"availability,omitempty"`
	Phone          string          `json:"phone,omitempty" bson:"phone,omitempty"`
	Bio            string          `json:"bio,omitempty" bson:"bio,omitempty"`
	Status         TherapistStatus `json:"status" bson:"status"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// UpdateTherapistStatusRequest is the request body for PUT /v1/admin/therapists/{id}/status
type UpdateTherapistStatusRequest struct {
	Status TherapistStatus `json:"status"`
}
