package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("", handler.Create)
		jobs.GET("", handler.List)
		jobs.GET("/search", handler.Search)
		jobs.GET("/me", handler.ListMine)
		jobs.GET("/user/:id", handler.ListByPoster)
		jobs.GET("/applied", handler.ListApplied)
		jobs.GET("/offered", handler.ListOffered)
		jobs.GET("/:id", handler.GetDetails)
		jobs.GET("/:id/applicants", handler.ListApplicants)
		jobs.GET("/:id/applicants/export", handler.ExportApplicants)
		jobs.POST("/:id/apply", handler.Apply)
		jobs.PATCH("/:id/status", handler.UpdateStatus)
		jobs.PATCH("/:id/application", handler.UpdateApplicationStatus)
	}
}

type CreateJobRequest struct {
	Title               string                   `json:"title" binding:"required"`
	Company             string                   `json:"company" binding:"required"`
	Description         string                   `json:"description" binding:"required"`
	Location            string                   `json:"location" binding:"required"`
	JobType             string                   `json:"job_type" binding:"required"`
	ExperienceLevel     string                   `json:"experience_level" binding:"required"`
	MinExperience       int                      `json:"min_experience"`
	ApplicationDeadline time.Time                `json:"application_deadline" binding:"required"`
	RequiredSkills      []string                 `json:"required_skills" binding:"required"`
	RequiredEducation   domain.RequiredEducation `json:"required_education"`
	GraduationYear      int                      `json:"graduation_year" binding:"required"`
	BenefitsOffered     []string                 `json:"benefits_offered"`
}

type ApplyRequest struct {
	ResumeLink string `json:"resume_link" binding:"required,url"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateApplicationStatusRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

// Create godoc
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Job JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := &domain.Job{
		Title:               req.Title,
		Company:             req.Company,
		Description:         req.Description,
		Location:            req.Location,
		JobType:             req.JobType,
		ExperienceLevel:     req.ExperienceLevel,
		MinExperience:       req.MinExperience,
		ApplicationDeadline: req.ApplicationDeadline,
		RequiredSkills:      req.RequiredSkills,
		RequiredEducation:   req.RequiredEducation,
		GraduationYear:      req.GraduationYear,
		BenefitsOffered:     req.BenefitsOffered,
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job posted", job)
}

// List godoc
// @Summary      List open jobs the requester can apply to
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
// @Security     BearerAuth
func (h *JobHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListOpenJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", jobs)
}

// Search godoc
// @Summary      Search open jobs
// @Tags         jobs
// @Produce      json
// @Param        title           query     string  false  "Title substring"
// @Param        location        query     string  false  "Location"
// @Param        jobType         query     string  false  "Job type"
// @Param        minExperience   query     int     false  "Maximum required experience"
// @Param        graduationYear  query     int     false  "Earliest admitted graduation year"
// @Param        degree          query     string  false  "Required degree"
// @Param        branch          query     string  false  "Required branch"
// @Param        skills          query     string  false  "Comma-separated skill substrings"
// @Success      200             {object}  response.Response
// @Router       /jobs/search [get]
// @Security     BearerAuth
func (h *JobHandler) Search(c *gin.Context) {
	filter := domain.JobFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
		JobType:  c.Query("jobType"),
		Degree:   c.Query("degree"),
		Branch:   c.Query("branch"),
	}
	if v := c.Query("minExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinExperience = &n
		}
	}
	if v := c.Query("graduationYear"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.GraduationYear = &n
		}
	}
	if v := c.Query("skills"); v != "" {
		for _, skill := range strings.Split(v, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				filter.Skills = append(filter.Skills, skill)
			}
		}
	}

	userID := c.GetString(string(domain.KeyUserID))
	jobs, err := h.jobUC.SearchJobs(c.Request.Context(), filter, userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", jobs)
}

// ListMine godoc
// @Summary      List jobs posted by the requester
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/me [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListMyJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", jobs)
}

// ListByPoster godoc
// @Summary      List jobs posted by a user
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Poster user id"
// @Success      200  {object}  response.Response
// @Router       /jobs/user/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) ListByPoster(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListJobsByPoster(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", jobs)
}

// ListApplied godoc
// @Summary      List jobs the requester has applied to
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/applied [get]
// @Security     BearerAuth
func (h *JobHandler) ListApplied(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListAppliedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", jobs)
}

// ListOffered godoc
// @Summary      List jobs where the requester's application was accepted
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /jobs/offered [get]
// @Security     BearerAuth
func (h *JobHandler) ListOffered(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobs, err := h.jobUC.ListOfferedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs fetched", jobs)
}

// GetDetails godoc
// @Summary      Get a single job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
// @Security     BearerAuth
func (h *JobHandler) GetDetails(c *gin.Context) {
	jobID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job, err := h.jobUC.GetJob(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job fetched", job)
}

// ListApplicants godoc
// @Summary      List applicants for a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs/{id}/applicants [get]
// @Security     BearerAuth
func (h *JobHandler) ListApplicants(c *gin.Context) {
	jobID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	applicants, err := h.jobUC.ListApplicants(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants fetched", applicants)
}

// ExportApplicants godoc
// @Summary      Download the applicant list as a spreadsheet
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  int  true  "Job id"
// @Success      200
// @Failure      403  {object}  response.Response
// @Router       /jobs/{id}/applicants/export [get]
// @Security     BearerAuth
func (h *JobHandler) ExportApplicants(c *gin.Context) {
	jobID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	data, filename, err := h.jobUC.ExportApplicants(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// Apply godoc
// @Summary      Apply for a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Job id"
// @Param        body  body      ApplyRequest  true  "Application JSON"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *JobHandler) Apply(c *gin.Context) {
	jobID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.ApplyForJob(c.Request.Context(), userID, jobID, req.ResumeLink); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application submitted", nil)
}

// UpdateStatus godoc
// @Summary      Update a job's status
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int                     true  "Job id"
// @Param        body  body      UpdateJobStatusRequest  true  "Status JSON"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	jobID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job, err := h.jobUC.UpdateJobStatus(c.Request.Context(), userID, jobID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}

// UpdateApplicationStatus godoc
// @Summary      Update an application's status
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int                             true  "Job id"
// @Param        body  body      UpdateApplicationStatusRequest  true  "Status JSON"
// @Success      200   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id}/application [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	jobID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.jobUC.UpdateApplicationStatus(c.Request.Context(), userID, jobID, req.ApplicationID, req.Status); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", nil)
}

// parseID reads an int64 path parameter, reporting a 400 on failure.
func parseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid " + name + " parameter"))
		return 0, err
	}
	return id, nil
}
