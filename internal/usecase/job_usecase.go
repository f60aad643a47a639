package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	validate *validator.Validate
}

func NewJobUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		validate: validator.New(),
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, posterID string, job *domain.Job) error {
	job.PostedBy = posterID
	job.Status = domain.JobStatusOpen
	job.Applications = nil

	if err := u.validate.Struct(job); err != nil {
		return apperror.BadRequest("Invalid job posting: " + err.Error())
	}
	if job.ApplicationDeadline.Before(time.Now()) {
		return apperror.BadRequest("Application deadline must be in the future")
	}

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJob(ctx context.Context, userID string, jobID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	// Only the poster sees the full application list; everyone else keeps
	// just their own application plus a flag.
	if job.PostedBy != userID {
		applied := false
		var own []domain.Application
		for _, app := range job.Applications {
			if app.Applicant == userID {
				applied = true
				own = []domain.Application{app}
				break
			}
		}
		job.Applications = own
		job.AlreadyApplied = &applied
	}
	return job, nil
}

func (u *jobUsecase) ListOpenJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchOpenExcluding(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) SearchJobs(ctx context.Context, filter domain.JobFilter, userID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.Search(ctx, filter, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchByPoster(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var ids []string
	for _, job := range jobs {
		for _, app := range job.Applications {
			ids = append(ids, app.Applicant)
		}
	}
	if len(ids) > 0 {
		summaries, err := u.userRepo.FetchSummaries(ctx, ids)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		for i := range jobs {
			for j := range jobs[i].Applications {
				summary := summaries[jobs[i].Applications[j].Applicant]
				jobs[i].Applications[j].ApplicantName = summary.Name
				jobs[i].Applications[j].ApplicantEmail = summary.Email
			}
		}
	}
	return jobs, nil
}

func (u *jobUsecase) ListJobsByPoster(ctx context.Context, currentUserID, posterID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchByPoster(ctx, posterID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Application lists belong to the poster alone.
	if currentUserID != posterID {
		for i := range jobs {
			jobs[i].Applications = nil
		}
	}
	return jobs, nil
}

func (u *jobUsecase) ListAppliedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchAppliedBy(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return keepOwnApplication(jobs, userID), nil
}

func (u *jobUsecase) ListOfferedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchOfferedTo(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return keepOwnApplication(jobs, userID), nil
}

// keepOwnApplication strips every application except the caller's own and
// orders jobs by that application's time, newest first.
func keepOwnApplication(jobs []domain.Job, userID string) []domain.Job {
	for i := range jobs {
		for _, app := range jobs[i].Applications {
			if app.Applicant == userID {
				jobs[i].Applications = []domain.Application{app}
				break
			}
		}
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return ownAppliedAt(jobs[a]).After(ownAppliedAt(jobs[b]))
	})
	return jobs
}

func ownAppliedAt(job domain.Job) time.Time {
	if len(job.Applications) == 0 {
		return time.Time{}
	}
	return job.Applications[0].AppliedAt
}

func (u *jobUsecase) ApplyForJob(ctx context.Context, userID string, jobID int64, resumeLink string) error {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}

	if job.PostedBy == userID {
		return apperror.BadRequest("Cannot apply to your own job posting")
	}
	if job.Status != domain.JobStatusOpen {
		return apperror.BadRequest("Job is not open for applications")
	}
	if job.ApplicationDeadline.Before(time.Now()) {
		return apperror.BadRequest("Application deadline has passed")
	}

	app := &domain.Application{
		ID:         uuid.NewString(),
		Applicant:  userID,
		ResumeLink: resumeLink,
		Status:     domain.ApplicationStatusPending,
		AppliedAt:  time.Now(),
	}

	appended, err := u.jobRepo.AppendApplication(ctx, jobID, app)
	if err != nil {
		return apperror.Internal(err)
	}
	if !appended {
		return apperror.BadRequest("Already applied to this job")
	}
	return nil
}

func (u *jobUsecase) UpdateJobStatus(ctx context.Context, userID string, jobID int64, status string) (*domain.Job, error) {
	if status != domain.JobStatusOpen && status != domain.JobStatusClosed && status != domain.JobStatusFilled {
		return nil, apperror.BadRequest("Invalid job status")
	}

	job, err := u.requirePoster(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if err := u.jobRepo.UpdateStatus(ctx, jobID, status); err != nil {
		return nil, apperror.Internal(err)
	}
	job.Status = status
	return job, nil
}

func (u *jobUsecase) UpdateApplicationStatus(ctx context.Context, userID string, jobID int64, applicationID, status string) error {
	switch status {
	case domain.ApplicationStatusPending, domain.ApplicationStatusReviewed,
		domain.ApplicationStatusInterviewed, domain.ApplicationStatusRejected,
		domain.ApplicationStatusAccepted:
	default:
		return apperror.BadRequest("Invalid application status")
	}

	job, err := u.requirePoster(ctx, userID, jobID)
	if err != nil {
		return err
	}

	found := false
	for i := range job.Applications {
		if job.Applications[i].ID == applicationID {
			job.Applications[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return apperror.NotFound("Application not found")
	}

	if err := u.jobRepo.SaveApplications(ctx, jobID, job.Applications); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) ListApplicants(ctx context.Context, userID string, jobID int64) ([]domain.JobApplicant, error) {
	job, err := u.requirePoster(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	return u.resolveApplicants(ctx, job)
}

func (u *jobUsecase) ExportApplicants(ctx context.Context, userID string, jobID int64) ([]byte, string, error) {
	job, err := u.requirePoster(ctx, userID, jobID)
	if err != nil {
		return nil, "", err
	}

	applicants, err := u.resolveApplicants(ctx, job)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheetName := "Applicants"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"NAME", "EMAIL", "STATUS", "APPLIED AT", "RESUME LINK"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, applicant := range applicants {
		values := []interface{}{
			applicant.Name,
			applicant.Email,
			applicant.Status,
			applicant.AppliedAt.Format("2006-01-02 15:04"),
			applicant.ResumeLink,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 24)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(err)
	}

	filename := fmt.Sprintf("job_%d_applicants_%s.xlsx", jobID, time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// requirePoster loads the job and rejects anyone but its poster.
func (u *jobUsecase) requirePoster(ctx context.Context, userID string, jobID int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.PostedBy != userID {
		return nil, apperror.Forbidden("Only the job poster can manage applications")
	}
	return job, nil
}

func (u *jobUsecase) resolveApplicants(ctx context.Context, job *domain.Job) ([]domain.JobApplicant, error) {
	ids := make([]string, 0, len(job.Applications))
	for _, app := range job.Applications {
		ids = append(ids, app.Applicant)
	}

	summaries, err := u.userRepo.FetchSummaries(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	applicants := make([]domain.JobApplicant, 0, len(job.Applications))
	for _, app := range job.Applications {
		summary := summaries[app.Applicant]
		applicants = append(applicants, domain.JobApplicant{
			UserID:        app.Applicant,
			Name:          summary.Name,
			Email:         summary.Email,
			ApplicationID: app.ID,
			Status:        app.Status,
			AppliedAt:     app.AppliedAt,
			ResumeLink:    app.ResumeLink,
		})
	}
	return applicants, nil
}
