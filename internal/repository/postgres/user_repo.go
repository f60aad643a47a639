package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, name, graduation_year, current_job, bio, location,
	company, job_title, linkedin_profile, skills, achievements, interests,
	university, degree, major, minor, work_experience, profile_image, profile_image_id,
	connections, privacy_settings, is_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.GraduationYear, &u.CurrentJob, &u.Bio, &u.Location,
		&u.Company, &u.JobTitle, &u.LinkedInProfile, pq.Array(&u.Skills), pq.Array(&u.Achievements), pq.Array(&u.Interests),
		&u.University, &u.Degree, &u.Major, &u.Minor, &u.WorkExperience, &u.ProfileImage, &u.ProfileImageID,
		pq.Array(&u.Connections), &u.PrivacySettings, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users
		(id, email, password_hash, name, graduation_year, current_job, university, degree, major, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.GraduationYear, user.CurrentJob,
		user.University, user.Degree, user.Major, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *domain.User) error {
	privacy, err := json.Marshal(user.PrivacySettings)
	if err != nil {
		return err
	}

	query := `UPDATE users SET
		name = $2, graduation_year = $3, current_job = $4, bio = $5, location = $6,
		company = $7, job_title = $8, linkedin_profile = $9,
		university = $10, degree = $11, major = $12, minor = $13,
		skills = $14, achievements = $15, interests = $16,
		privacy_settings = $17::jsonb, updated_at = now()
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.GraduationYear, user.CurrentJob, user.Bio, user.Location,
		user.Company, user.JobTitle, user.LinkedInProfile,
		user.University, user.Degree, user.Major, user.Minor,
		pq.Array(user.Skills), pq.Array(user.Achievements), pq.Array(user.Interests),
		string(privacy),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateImage(ctx context.Context, userID, imageURL, imageID string) error {
	query := `UPDATE users SET profile_image = $2, profile_image_id = $3, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, userID, imageURL, imageID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateWorkExperience(ctx context.Context, userID string, experience []domain.WorkExperience) error {
	if experience == nil {
		experience = []domain.WorkExperience{}
	}
	encoded, err := json.Marshal(experience)
	if err != nil {
		return err
	}

	query := `UPDATE users SET work_experience = $2::jsonb, updated_at = now() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, userID, string(encoded))
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddConnection inserts each participant into the other's connection set.
// Both updates run in one transaction so a failure cannot leave the relation
// one-sided. The ANY guard keeps the insert race-free against a concurrent
// identical request.
func (r *userRepo) AddConnection(ctx context.Context, userID, targetID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE users SET connections = array_append(connections, $2), updated_at = now()
		WHERE id = $1 AND NOT ($2 = ANY(connections))`
	if _, err := tx.Exec(ctx, query, userID, targetID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, targetID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RemoveConnection is idempotent: removing an absent connection is a no-op.
func (r *userRepo) RemoveConnection(ctx context.Context, userID, targetID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE users SET connections = array_remove(connections, $2), updated_at = now() WHERE id = $1`
	if _, err := tx.Exec(ctx, query, userID, targetID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, targetID, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *userRepo) GetConnections(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	var connections []string
	err := r.db.QueryRow(ctx, `SELECT connections FROM users WHERE id = $1`, userID).Scan(pq.Array(&connections))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(connections) == 0 {
		return []domain.UserSummary{}, nil
	}

	query := `SELECT id, name, email, job_title, company, location FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, pq.Array(connections))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.UserSummary
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.JobTitle, &s.Company, &s.Location); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *userRepo) Search(ctx context.Context, filter domain.AlumniFilter, limit int) ([]domain.User, error) {
	// password_hash and connections are deliberately not selected
	query := `SELECT id, email, name, graduation_year, current_job, bio, location,
		company, job_title, linkedin_profile, skills, achievements, interests,
		university, degree, major, minor, profile_image, is_verified, created_at, updated_at
	FROM users`

	var conds []string
	var args []interface{}

	like := func(column, value string) {
		args = append(args, "%"+value+"%")
		conds = append(conds, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}

	if filter.Name != "" {
		like("name", filter.Name)
	}
	if filter.GraduationYear != 0 {
		args = append(args, filter.GraduationYear)
		conds = append(conds, fmt.Sprintf("graduation_year = $%d", len(args)))
	}
	if filter.Major != "" {
		like("major", filter.Major)
	}
	if filter.Company != "" {
		like("company", filter.Company)
	}
	if filter.JobTitle != "" {
		like("job_title", filter.JobTitle)
	}
	if filter.Skills != "" {
		args = append(args, "%"+filter.Skills+"%")
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(skills) s WHERE s ILIKE $%d)", len(args)))
	}
	if filter.University != "" {
		like("university", filter.University)
	}
	if filter.Location != "" {
		like("location", filter.Location)
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Name, &u.GraduationYear, &u.CurrentJob, &u.Bio, &u.Location,
			&u.Company, &u.JobTitle, &u.LinkedInProfile, pq.Array(&u.Skills), pq.Array(&u.Achievements), pq.Array(&u.Interests),
			&u.University, &u.Degree, &u.Major, &u.Minor, &u.ProfileImage, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepo) Suggest(ctx context.Context, user *domain.User, limit int) ([]domain.UserSummary, error) {
	exclude := append([]string{user.ID}, user.Connections...)

	query := `SELECT id, name, job_title, company FROM users
		WHERE NOT (id = ANY($1))
		AND (major = $2 OR graduation_year = $3 OR (company <> '' AND company = $4) OR university = $5)
		LIMIT $6`

	rows, err := r.db.Query(ctx, query, pq.Array(exclude), user.Major, user.GraduationYear, user.Company, user.University, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []domain.UserSummary
	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.JobTitle, &s.Company); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

func (r *userRepo) FetchSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	summaries := make(map[string]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	query := `SELECT id, name, email, job_title, company, location FROM users WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.JobTitle, &s.Company, &s.Location); err != nil {
			return nil, err
		}
		summaries[s.ID] = s
	}
	return summaries, rows.Err()
}
