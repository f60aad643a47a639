package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// applicantMatch builds the jsonb containment document that matches any
// application element with the given fields set.
func applicantMatch(fields map[string]string) string {
	doc, _ := json.Marshal([]map[string]string{fields})
	return string(doc)
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs
		(title, company, description, location, job_type, experience_level, min_experience,
		 application_deadline, required_skills, required_degree, required_branch, graduation_year,
		 benefits_offered, status, posted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id`
	return r.db.QueryRow(ctx, query,
		job.Title, job.Company, job.Description, job.Location, job.JobType, job.ExperienceLevel, job.MinExperience,
		job.ApplicationDeadline, pq.Array(job.RequiredSkills), job.RequiredEducation.Degree, job.RequiredEducation.Branch,
		job.GraduationYear, pq.Array(job.BenefitsOffered), job.Status, job.PostedBy,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, title, company, description, location, job_type, experience_level, min_experience,
		application_deadline, required_skills, required_degree, required_branch, graduation_year,
		benefits_offered, status, posted_by, applications, created_at, updated_at
	FROM jobs WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Company, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
		&job.MinExperience, &job.ApplicationDeadline, pq.Array(&job.RequiredSkills),
		&job.RequiredEducation.Degree, &job.RequiredEducation.Branch, &job.GraduationYear,
		pq.Array(&job.BenefitsOffered), &job.Status, &job.PostedBy, &job.Applications,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// listColumns excludes the applications sub-collection; list endpoints never
// expose it raw.
const listColumns = `j.id, j.title, j.company, j.description, j.location, j.job_type, j.experience_level,
	j.min_experience, j.application_deadline, j.required_skills, j.required_degree, j.required_branch,
	j.graduation_year, j.benefits_offered, j.status, j.posted_by, j.created_at, j.updated_at,
	COALESCE(u.name, '') AS poster_name, COALESCE(u.email, '') AS poster_email`

func scanJobRows(rows pgx.Rows) ([]domain.Job, error) {
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.MinExperience, &job.ApplicationDeadline, pq.Array(&job.RequiredSkills),
			&job.RequiredEducation.Degree, &job.RequiredEducation.Branch, &job.GraduationYear,
			pq.Array(&job.BenefitsOffered), &job.Status, &job.PostedBy,
			&job.CreatedAt, &job.UpdatedAt, &job.PosterName, &job.PosterEmail,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) FetchOpenExcluding(ctx context.Context, userID string) ([]domain.Job, error) {
	query := `SELECT ` + listColumns + `
		FROM jobs j LEFT JOIN users u ON j.posted_by = u.id
		WHERE j.status = 'open'
		  AND j.application_deadline >= now()
		  AND j.posted_by <> $1
		  AND NOT j.applications @> $2::jsonb
		ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID, applicantMatch(map[string]string{"applicant": userID}))
	if err != nil {
		return nil, err
	}
	return scanJobRows(rows)
}

func (r *jobRepo) Search(ctx context.Context, filter domain.JobFilter, userID string) ([]domain.Job, error) {
	// Search is always scoped to open jobs; the applications array is used
	// only to compute the already_applied flag.
	args := []interface{}{applicantMatch(map[string]string{"applicant": userID})}
	query := `SELECT ` + listColumns + `, j.applications @> $1::jsonb AS already_applied
		FROM jobs j LEFT JOIN users u ON j.posted_by = u.id
		WHERE j.status = 'open'`

	and := func(cond string, value interface{}) {
		args = append(args, value)
		query += " AND " + fmt.Sprintf(cond, len(args))
	}

	if filter.Title != "" {
		and("j.title ILIKE $%d", "%"+filter.Title+"%")
	}
	if filter.Location != "" {
		and("j.location = $%d", filter.Location)
	}
	if filter.JobType != "" {
		and("j.job_type = $%d", filter.JobType)
	}
	if filter.MinExperience != nil {
		and("j.min_experience <= $%d", *filter.MinExperience)
	}
	if filter.GraduationYear != nil {
		and("j.graduation_year >= $%d", *filter.GraduationYear)
	}
	if filter.Degree != "" {
		and("j.required_degree = $%d", filter.Degree)
	}
	if filter.Branch != "" {
		and("j.required_branch = $%d", filter.Branch)
	}
	for _, skill := range filter.Skills {
		and("EXISTS (SELECT 1 FROM unnest(j.required_skills) s WHERE s ILIKE $%d)", "%"+skill+"%")
	}

	query += " ORDER BY j.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		var applied bool
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.MinExperience, &job.ApplicationDeadline, pq.Array(&job.RequiredSkills),
			&job.RequiredEducation.Degree, &job.RequiredEducation.Branch, &job.GraduationYear,
			pq.Array(&job.BenefitsOffered), &job.Status, &job.PostedBy,
			&job.CreatedAt, &job.UpdatedAt, &job.PosterName, &job.PosterEmail,
			&applied,
		); err != nil {
			return nil, err
		}
		job.AlreadyApplied = &applied
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) FetchByPoster(ctx context.Context, posterID string) ([]domain.Job, error) {
	query := `SELECT ` + listColumns + `, j.applications
		FROM jobs j LEFT JOIN users u ON j.posted_by = u.id
		WHERE j.posted_by = $1
		ORDER BY j.created_at DESC`

	rows, err := r.db.Query(ctx, query, posterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.MinExperience, &job.ApplicationDeadline, pq.Array(&job.RequiredSkills),
			&job.RequiredEducation.Degree, &job.RequiredEducation.Branch, &job.GraduationYear,
			pq.Array(&job.BenefitsOffered), &job.Status, &job.PostedBy,
			&job.CreatedAt, &job.UpdatedAt, &job.PosterName, &job.PosterEmail,
			&job.Applications,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) fetchByApplicationMatch(ctx context.Context, match string) ([]domain.Job, error) {
	query := `SELECT ` + listColumns + `, j.applications
		FROM jobs j LEFT JOIN users u ON j.posted_by = u.id
		WHERE j.applications @> $1::jsonb`

	rows, err := r.db.Query(ctx, query, match)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Company, &job.Description, &job.Location, &job.JobType, &job.ExperienceLevel,
			&job.MinExperience, &job.ApplicationDeadline, pq.Array(&job.RequiredSkills),
			&job.RequiredEducation.Degree, &job.RequiredEducation.Branch, &job.GraduationYear,
			pq.Array(&job.BenefitsOffered), &job.Status, &job.PostedBy,
			&job.CreatedAt, &job.UpdatedAt, &job.PosterName, &job.PosterEmail,
			&job.Applications,
		); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r *jobRepo) FetchAppliedBy(ctx context.Context, userID string) ([]domain.Job, error) {
	return r.fetchByApplicationMatch(ctx, applicantMatch(map[string]string{"applicant": userID}))
}

func (r *jobRepo) FetchOfferedTo(ctx context.Context, userID string) ([]domain.Job, error) {
	return r.fetchByApplicationMatch(ctx, applicantMatch(map[string]string{
		"applicant": userID,
		"status":    domain.ApplicationStatusAccepted,
	}))
}

// AppendApplication appends in a single conditional update: the containment
// guard makes the duplicate check and the append atomic, so two concurrent
// applicants can never clobber each other's application.
func (r *jobRepo) AppendApplication(ctx context.Context, jobID int64, app *domain.Application) (bool, error) {
	element, err := json.Marshal([]*domain.Application{app})
	if err != nil {
		return false, err
	}

	query := `UPDATE jobs SET applications = applications || $3::jsonb, updated_at = now()
		WHERE id = $1 AND NOT applications @> $2::jsonb`
	result, err := r.db.Exec(ctx, query, jobID,
		applicantMatch(map[string]string{"applicant": app.Applicant}), string(element))
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func (r *jobRepo) SaveApplications(ctx context.Context, jobID int64, apps []domain.Application) error {
	if apps == nil {
		apps = []domain.Application{}
	}
	encoded, err := json.Marshal(apps)
	if err != nil {
		return err
	}

	query := `UPDATE jobs SET applications = $2::jsonb, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, jobID, string(encoded))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, jobID int64, status string) error {
	query := `UPDATE jobs SET status = $2, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, jobID, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
