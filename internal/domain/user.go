package domain

import (
	"context"
	"time"
)

// WorkExperience is an embedded entry in a user's work history. The ID is
// assigned when the entry is appended and is unique within its owner.
type WorkExperience struct {
	ID          string     `json:"id"`
	Company     string     `json:"company" validate:"required"`
	Position    string     `json:"position" validate:"required"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Description string     `json:"description,omitempty"`
}

type PrivacySettings struct {
	ShowEmail    bool `json:"show_email"`
	ShowPhone    bool `json:"show_phone"`
	ShowLocation bool `json:"show_location"`
}

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`

	Name           string `json:"name"`
	GraduationYear int    `json:"graduation_year"`
	CurrentJob     string `json:"current_job,omitempty"`

	Bio             string   `json:"bio,omitempty"`
	Location        string   `json:"location,omitempty"`
	Company         string   `json:"company,omitempty"`
	JobTitle        string   `json:"job_title,omitempty"`
	LinkedInProfile string   `json:"linkedin_profile,omitempty"`
	Skills          []string `json:"skills"`
	Achievements    []string `json:"achievements"`
	Interests       []string `json:"interests"`

	University string `json:"university"`
	Degree     string `json:"degree"`
	Major      string `json:"major"`
	Minor      string `json:"minor,omitempty"`

	WorkExperience []WorkExperience `json:"work_experience"`

	ProfileImage   string `json:"profile_image"`
	ProfileImageID string `json:"-"`

	// Mutual connections. Omitted from search results and detailed views.
	Connections []string `json:"connections,omitempty"`

	PrivacySettings PrivacySettings `json:"privacy_settings"`
	IsVerified      bool            `json:"is_verified"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// UserSummary is the display identity used when populating references
// (connections, post authors, conversation counterparts).
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
}

// DetailedProfile replaces the raw connection list with a count and a flag
// relative to the requesting user.
type DetailedProfile struct {
	User
	ConnectionCount int  `json:"connection_count"`
	IsConnected     bool `json:"is_connected"`
}

// PrivacyPatch carries the subset of privacy flags present in an update.
type PrivacyPatch struct {
	ShowEmail    *bool `json:"show_email"`
	ShowPhone    *bool `json:"show_phone"`
	ShowLocation *bool `json:"show_location"`
}

func (p *PrivacyPatch) IsEmpty() bool {
	return p == nil || (p.ShowEmail == nil && p.ShowPhone == nil && p.ShowLocation == nil)
}

// ProfilePatch holds allow-listed profile fields. Zero values (empty strings,
// empty slices, empty privacy patch) mean "leave unchanged".
type ProfilePatch struct {
	Name            string        `json:"name"`
	GraduationYear  int           `json:"graduation_year"`
	CurrentJob      string        `json:"current_job"`
	Bio             string        `json:"bio"`
	Location        string        `json:"location"`
	Company         string        `json:"company"`
	JobTitle        string        `json:"job_title"`
	LinkedInProfile string        `json:"linkedin_profile"`
	University      string        `json:"university"`
	Degree          string        `json:"degree"`
	Major           string        `json:"major"`
	Minor           string        `json:"minor"`
	Skills          []string      `json:"skills"`
	Achievements    []string      `json:"achievements"`
	Interests       []string      `json:"interests"`
	PrivacySettings *PrivacyPatch `json:"privacy_settings"`
}

// AlumniFilter holds the optional alumni search criteria. String fields are
// matched case-insensitively as substrings; GraduationYear is an exact match.
type AlumniFilter struct {
	Name           string
	GraduationYear int
	Major          string
	Company        string
	JobTitle       string
	Skills         string
	University     string
	Location       string
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateImage(ctx context.Context, userID, imageURL, imageID string) error
	UpdateWorkExperience(ctx context.Context, userID string, experience []WorkExperience) error

	// AddConnection and RemoveConnection mutate both participants inside a
	// single transaction so the relation stays symmetric.
	AddConnection(ctx context.Context, userID, targetID string) error
	RemoveConnection(ctx context.Context, userID, targetID string) error
	GetConnections(ctx context.Context, userID string) ([]UserSummary, error)

	Search(ctx context.Context, filter AlumniFilter, limit int) ([]User, error)
	Suggest(ctx context.Context, user *User, limit int) ([]UserSummary, error)
	FetchSummaries(ctx context.Context, ids []string) (map[string]UserSummary, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, user *User, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	GetDetailedProfile(ctx context.Context, currentUserID, userID string) (*DetailedProfile, error)
	UpdateProfile(ctx context.Context, userID string, patch *ProfilePatch) (*User, error)

	AddWorkExperience(ctx context.Context, userID string, exp *WorkExperience) (*User, error)
	UpdateWorkExperience(ctx context.Context, userID, experienceID string, exp *WorkExperience) (*User, error)
	DeleteWorkExperience(ctx context.Context, userID, experienceID string) (*User, error)

	SearchAlumni(ctx context.Context, filter AlumniFilter) ([]User, error)
	SuggestConnections(ctx context.Context, userID string) ([]UserSummary, error)

	AddConnection(ctx context.Context, userID, targetID string) error
	RemoveConnection(ctx context.Context, userID, targetID string) error
	GetConnections(ctx context.Context, currentUserID, userID string) ([]UserSummary, error)

	UploadProfileImage(ctx context.Context, userID string, data []byte, contentType string) (string, error)
	RemoveProfileImage(ctx context.Context, userID string) (string, error)
}
