package v1

import (
	"net/http"
	"strconv"
	"strings"

	"designhire-backend/internal/delivery/http/response"
	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers the job routes. Listing and detail are
// public with optional identity; everything else requires a session.
func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/jobs", handler.List)
	public.GET("/jobs/:id", handler.Detail)

	protected.POST("/jobs", handler.Create)
	protected.PUT("/jobs/:id", handler.Update)
	protected.DELETE("/jobs/:id", handler.Delete)
	protected.GET("/jobs/posted", handler.Posted)
	protected.GET("/jobs/recommended", handler.Recommended)
}

type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	SkillsRequired []string `json:"skillsRequired" binding:"required,min=1"`
	EmploymentType string   `json:"employmentType"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary"`
	Experience     string   `json:"experience"`
	Education      string   `json:"education"`
}

// UpdateJobRequest is a partial update; empty fields keep the stored
// value, matching the edit form which submits the whole object.
type UpdateJobRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SkillsRequired []string `json:"skillsRequired"`
	EmploymentType string   `json:"employmentType"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary"`
	Experience     string   `json:"experience"`
	Education      string   `json:"education"`
	Status         string   `json:"status"`
}

func jobIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.Error(apperror.BadRequest("Invalid job id"))
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary      List Jobs
// @Description  Paginated open jobs with optional search, location, employment type and skills filters. Signed-in applicants do not see jobs they already applied to.
// @Tags         jobs
// @Produce      json
// @Param        page      query  int     false  "Page (default 1)"
// @Param        limit     query  int     false  "Page size (default 9)"
// @Param        search    query  string  false  "Match against title and description"
// @Param        location  query  string  false  "Location substring"
// @Param        type      query  string  false  "Employment type"
// @Param        skills    query  string  false  "Comma-separated skills (all must match)"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	filter := domain.JobFilter{
		Search:         strings.TrimSpace(c.Query("search")),
		Location:       strings.TrimSpace(c.Query("location")),
		EmploymentType: strings.TrimSpace(c.Query("type")),
		ViewerID:       c.GetString(string(domain.KeyUserID)),
		Page:           page,
		Limit:          limit,
	}
	if skills := strings.TrimSpace(c.Query("skills")); skills != "" {
		for _, s := range strings.Split(skills, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Skills = append(filter.Skills, s)
			}
		}
	}

	result, err := h.jobUC.ListJobs(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs retrieved", result)
}

// Detail godoc
// @Summary      Job Details
// @Description  Fetch a single job. The applicant list is included only for the job's owner. Each fetch counts a view.
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) Detail(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	detail, err := h.jobUC.GetJobDetails(c.Request.Context(), id, c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job retrieved", detail)
}

// Create godoc
// @Summary      Post a Job
// @Description  Create a job posting. Recruiters only.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      CreateJobRequest  true  "Job Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can post jobs"))
		return
	}

	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Please enter all the fields"))
		return
	}

	job := &domain.Job{
		Title:          req.Title,
		Description:    req.Description,
		SkillsRequired: req.SkillsRequired,
		EmploymentType: req.EmploymentType,
		Location:       req.Location,
		Salary:         req.Salary,
		Experience:     req.Experience,
		Education:      req.Education,
	}
	if err := h.jobUC.CreateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update a Job
// @Description  Partially update a job posting. Only the owner may update. Empty fields are left unchanged.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      int               true  "Job ID"
// @Param        job  body      UpdateJobRequest  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	upd := &domain.JobUpdate{}
	setIfPresent := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	setIfPresent(&upd.Title, req.Title)
	setIfPresent(&upd.Description, req.Description)
	setIfPresent(&upd.EmploymentType, req.EmploymentType)
	setIfPresent(&upd.Location, req.Location)
	setIfPresent(&upd.Salary, req.Salary)
	setIfPresent(&upd.Experience, req.Experience)
	setIfPresent(&upd.Education, req.Education)
	setIfPresent(&upd.Status, req.Status)
	if len(req.SkillsRequired) > 0 {
		upd.SkillsRequired = req.SkillsRequired
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id, upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a Job
// @Description  Delete a job along with its applications and saved-list entries. Only the owner may delete.
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	if err := h.jobUC.DeleteJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// Posted godoc
// @Summary      My Posted Jobs
// @Description  Paginated jobs posted by the signed-in recruiter.
// @Tags         jobs
// @Produce      json
// @Param        page   query  int  false  "Page (default 1)"
// @Param        limit  query  int  false  "Page size (default 9)"
// @Success      200  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/posted [get]
func (h *JobHandler) Posted(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can view posted jobs"))
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.jobUC.ListPostedJobs(c.Request.Context(), c.GetString(string(domain.KeyUserID)), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Posted jobs retrieved", result)
}

// Recommended godoc
// @Summary      Recommended Jobs
// @Description  Up to six open jobs overlapping the applicant's skills, excluding jobs already applied to.
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/recommended [get]
func (h *JobHandler) Recommended(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can view recommended jobs"))
		return
	}

	jobs, err := h.jobUC.RecommendedJobs(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recommended jobs retrieved", jobs)
}
