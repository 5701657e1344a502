package model

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty" bson:"relationship,omitempty"`
}

type Profile struct {
	Phone            string            `json:"phone,omitempty" bson:"phone,omitempty"`
	DateOfBirth      *time.Time        `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender           string            `json:"gender,omitempty" bson:"gender,omitempty"` // male, female, other, prefer-not-to-say
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
}

// MentalHealth tracks engagement counters for a student.
type MentalHealth struct {
	CurrentMood        string     `json:"currentMood,omitempty" bson:"currentMood,omitempty"` // happy, neutral, stressed, anxious, sad, angry
	LastMoodUpdate     *time.Time `json:"lastMoodUpdate,omitempty" bson:"lastMoodUpdate,omitempty"`
	SessionsCompleted  int        `json:"sessionsCompleted" bson:"sessionsCompleted"`
	AppointmentsBooked int        `json:"appointmentsBooked" bson:"appointmentsBooked"`
	LastChatSession    *time.Time `json:"lastChatSession,omitempty" bson:"lastChatSession,omitempty"`
}

// User is a registered account
type User struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	Name         string       `json:"name" bson:"name"`
	Email        string       `json:"email" bson:"email"` // stored lower-case
	PasswordHash string       `json:"-" bson:"passwordHash"`
	Role         Role         `json:"role" bson:"role"`
	IsActive     bool         `json:"isActive" bson:"isActive"`
	LastLogin    *time.Time   `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	Profile      Profile      `json:"profile" bson:"profile"`
	MentalHealth MentalHealth `json:"mentalHealth" bson:"mentalHealth"`
	CreatedAt    time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// PublicUser is the user view returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Public strips everything but identity fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}
