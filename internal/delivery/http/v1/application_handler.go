package v1

import (
	"net/http"

	"designhire-backend/internal/delivery/http/response"
	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	protected.POST("/jobs/:id/apply", handler.Apply)
	protected.DELETE("/jobs/:id/withdraw", handler.Withdraw)
	protected.GET("/jobs/:id/applicants", handler.JobApplicants)
	protected.GET("/jobs/all-applicants", handler.AllApplicants)
	protected.PATCH("/jobs/:id/applicants/:userId/status", handler.UpdateStatus)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a Job
// @Description  Create a pending application for the signed-in applicant. Applying twice to the same job is rejected.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can apply for jobs"))
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	if err := h.applicationUC.Apply(c.Request.Context(), id, c.GetString(string(domain.KeyUserID))); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Applied successfully", nil)
}

// Withdraw godoc
// @Summary      Withdraw an Application
// @Description  Remove the signed-in applicant's pending application. Decided applications cannot be withdrawn.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/{id}/withdraw [delete]
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can withdraw applications"))
		return
	}
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	if err := h.applicationUC.Withdraw(c.Request.Context(), id, c.GetString(string(domain.KeyUserID))); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// JobApplicants godoc
// @Summary      Job Applicants
// @Description  List a job's applicant entries. Only the job's owner may view them.
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/{id}/applicants [get]
func (h *ApplicationHandler) JobApplicants(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	apps, err := h.applicationUC.ListJobApplicants(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved", apps)
}

// AllApplicants godoc
// @Summary      All Applicants
// @Description  Flatten applicant entries across every job the signed-in recruiter posted.
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/all-applicants [get]
func (h *ApplicationHandler) AllApplicants(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeRecruiter {
		c.Error(apperror.Forbidden("Only recruiters can view applicants"))
		return
	}

	apps, err := h.applicationUC.ListAllApplicants(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applicants retrieved", apps)
}

// UpdateStatus godoc
// @Summary      Decide an Application
// @Description  Accept or reject an application. Only the job's owner may decide; decisions are terminal.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Job ID"
// @Param        userId  path      string               true  "Applicant User ID"
// @Param        status  body      UpdateStatusRequest  true  "New Status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /jobs/{id}/applicants/{userId}/status [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}
	applicantID := c.Param("userId")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Status must be 'accepted' or 'rejected'"))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), c.GetString(string(domain.KeyUserID)), id, applicantID, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}
