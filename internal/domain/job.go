package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Job status constants
const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
	JobStatusFilled = "filled"
)

// Application status constants
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusReviewed    = "reviewed"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusRejected    = "rejected"
	ApplicationStatusAccepted    = "accepted"
)

// Application is embedded in its Job. The ID is assigned at append time and
// is unique within the job; at most one application exists per applicant.
type Application struct {
	ID         string    `json:"id"`
	Applicant  string    `json:"applicant"`
	ResumeLink string    `json:"resume_link"`
	Status     string    `json:"status"`
	AppliedAt  time.Time `json:"applied_at"`

	// Joined applicant identity for poster-facing listings, never persisted
	ApplicantName  string `json:"applicant_name,omitempty"`
	ApplicantEmail string `json:"applicant_email,omitempty"`
}

type RequiredEducation struct {
	Degree string `json:"degree" validate:"required"` // "Bachelors", "Masters", "PhD"
	Branch string `json:"branch" validate:"required"` // "CSE", "IT", "ECE", "BBA"
}

type Job struct {
	ID                  int64             `json:"id"`
	Title               string            `json:"title" validate:"required"`
	Company             string            `json:"company" validate:"required"`
	Description         string            `json:"description" validate:"required"`
	Location            string            `json:"location" validate:"required,oneof=remote in-office hybrid"`
	JobType             string            `json:"job_type" validate:"required,oneof=full-time part-time contract internship"`
	ExperienceLevel     string            `json:"experience_level" validate:"required,oneof=entry mid senior"`
	MinExperience       int               `json:"min_experience" validate:"gte=0"` // years
	ApplicationDeadline time.Time         `json:"application_deadline" validate:"required"`
	RequiredSkills      []string          `json:"required_skills" validate:"required,min=1"`
	RequiredEducation   RequiredEducation `json:"required_education"`
	GraduationYear      int               `json:"graduation_year" validate:"required"`
	BenefitsOffered     []string          `json:"benefits_offered,omitempty"`
	Status              string            `json:"status"`
	PostedBy            string            `json:"posted_by"`
	Applications        []Application     `json:"applications,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`

	// Joined / computed data for list responses, never persisted
	PosterName     string `json:"poster_name,omitempty"`
	PosterEmail    string `json:"poster_email,omitempty"`
	AlreadyApplied *bool  `json:"already_applied,omitempty"`
}

// JobApplicant is the poster-facing view of one application with the
// applicant's identity resolved.
type JobApplicant struct {
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ApplicationID string    `json:"application_id"`
	Status        string    `json:"status"`
	AppliedAt     time.Time `json:"applied_at"`
	ResumeLink    string    `json:"resume_link"`
}

// JobFilter holds the optional job search criteria. The search is always
// scoped to open jobs.
type JobFilter struct {
	Title          string
	Location       string
	JobType        string
	MinExperience  *int // matches jobs requiring at most this many years
	GraduationYear *int // matches jobs admitting this year or later
	Degree         string
	Branch         string
	Skills         []string // case-insensitive substring match, any skill
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)

	// FetchOpenExcluding returns open jobs with a future deadline where the
	// given user is neither the poster nor an applicant. Applications are
	// not loaded.
	FetchOpenExcluding(ctx context.Context, userID string) ([]Job, error)
	Search(ctx context.Context, filter JobFilter, userID string) ([]Job, error)
	FetchByPoster(ctx context.Context, posterID string) ([]Job, error)
	FetchAppliedBy(ctx context.Context, userID string) ([]Job, error)
	FetchOfferedTo(ctx context.Context, userID string) ([]Job, error)

	// AppendApplication atomically appends unless the applicant already has
	// an application on the job; returns false in that case.
	AppendApplication(ctx context.Context, jobID int64, app *Application) (bool, error)
	SaveApplications(ctx context.Context, jobID int64, apps []Application) error
	UpdateStatus(ctx context.Context, jobID int64, status string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, posterID string, job *Job) error
	GetJob(ctx context.Context, userID string, jobID int64) (*Job, error)
	ListOpenJobs(ctx context.Context, userID string) ([]Job, error)
	SearchJobs(ctx context.Context, filter JobFilter, userID string) ([]Job, error)
	ListMyJobs(ctx context.Context, userID string) ([]Job, error)
	ListJobsByPoster(ctx context.Context, currentUserID, posterID string) ([]Job, error)
	ListAppliedJobs(ctx context.Context, userID string) ([]Job, error)
	ListOfferedJobs(ctx context.Context, userID string) ([]Job, error)
	ApplyForJob(ctx context.Context, userID string, jobID int64, resumeLink string) error
	UpdateJobStatus(ctx context.Context, userID string, jobID int64, status string) (*Job, error)
	UpdateApplicationStatus(ctx context.Context, userID string, jobID int64, applicationID, status string) error
	ListApplicants(ctx context.Context, userID string, jobID int64) ([]JobApplicant, error)
	ExportApplicants(ctx context.Context, userID string, jobID int64) ([]byte, string, error)
}
