package v1

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"designhire-backend/config"
	"designhire-backend/internal/delivery/http/response"
	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"
	"designhire-backend/pkg/logger"
	"designhire-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

const (
	avatarMaxDimension = 800
	avatarJPEGQuality  = 80
)

type UserHandler struct {
	userUC   domain.UserUsecase
	uploader *storage.Uploader
	config   *config.Config
}

// NewUserHandler registers profile and saved-jobs routes. The public
// profile lookup is the only unauthenticated one.
func NewUserHandler(public *gin.RouterGroup, protected *gin.RouterGroup, userUC domain.UserUsecase, uploader *storage.Uploader, cfg *config.Config) {
	handler := &UserHandler{
		userUC:   userUC,
		uploader: uploader,
		config:   cfg,
	}

	users := protected.Group("/users")
	{
		users.GET("/profile", handler.Profile)
		users.PATCH("/profile", handler.UpdateProfile)
		users.GET("/applied", handler.AppliedJobs)
		users.GET("/saved", handler.SavedJobs)
		users.POST("/saved/:jobId", handler.SaveJob)
		users.DELETE("/saved/:jobId", handler.UnsaveJob)
	}

	public.GET("/users/:id", handler.PublicProfile)
}

// Profile godoc
// @Summary      My Profile
// @Description  The signed-in user plus their applied, saved or posted job lists.
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.userUC.GetProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// PublicProfile godoc
// @Summary      Public Profile
// @Description  A user's public profile, without role-internal fields.
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) PublicProfile(c *gin.Context) {
	user, err := h.userUC.GetPublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", user)
}

// readUpload pulls a multipart file into memory, enforcing the size cap.
func (h *UserHandler) readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > h.config.MaxUploadBytes {
		return nil, apperror.BadRequest("File too large")
	}
	src, err := fh.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.config.MaxUploadBytes+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if int64(len(data)) > h.config.MaxUploadBytes {
		return nil, apperror.BadRequest("File too large")
	}
	return data, nil
}

// uploadValidated validates and stores one upload, returning its URL.
// Images are downscaled and re-encoded before storage.
func (h *UserHandler) uploadValidated(c *gin.Context, fh *multipart.FileHeader, kind storage.FileKind, folder string) (string, error) {
	if h.uploader == nil {
		return "", apperror.New(http.StatusServiceUnavailable, "File uploads are not configured", nil)
	}

	data, err := h.readUpload(fh)
	if err != nil {
		return "", err
	}

	contentType := fh.Header.Get("Content-Type")
	result := storage.ValidateFile(kind, fh.Filename, data, contentType)
	if !result.Valid {
		return "", apperror.BadRequest(result.Error)
	}

	filename := fh.Filename
	if kind == storage.KindImage {
		compressed, err := storage.CompressImage(data, avatarMaxDimension, avatarJPEGQuality)
		if err != nil {
			logger.Log.Warn("image compression failed, storing original", "error", err)
		} else {
			data = compressed
			contentType = "image/jpeg"
			filename = storage.SanitizeFilename(fh.Filename) + ".jpg"
		}
	}

	url, err := h.uploader.Upload(c.Request.Context(), folder, filename, contentType, data)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return url, nil
}

// UpdateProfile godoc
// @Summary      Update My Profile
// @Description  Partially update the profile. Accepts multipart form data with optional profilePic and resume files. Fields outside the user's role are ignored.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        name        formData  string  false  "Display name"
// @Param        userName    formData  string  false  "Username"
// @Param        bio         formData  string  false  "Bio"
// @Param        skills      formData  string  false  "Comma-separated skills"
// @Param        profilePic  formData  file    false  "Avatar image (jpg/png)"
// @Param        resumeUrl   formData  file    false  "Resume (pdf/doc/docx)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	upd := &domain.ProfileUpdate{}
	setIfPresent := func(dst **string, field string) {
		if v, ok := c.GetPostForm(field); ok && v != "" {
			*dst = &v
		}
	}
	setIfPresent(&upd.Name, "name")
	setIfPresent(&upd.UserName, "userName")
	setIfPresent(&upd.Bio, "bio")
	setIfPresent(&upd.CompanyName, "companyName")
	setIfPresent(&upd.CompanyWebsite, "companyWebsite")
	setIfPresent(&upd.CompanyLocation, "companyLocation")
	if skills, ok := c.GetPostFormArray("skills"); ok && len(skills) > 0 {
		upd.Skills = skills
	}

	if fh, err := c.FormFile("profilePic"); err == nil {
		url, err := h.uploadValidated(c, fh, storage.KindImage, "avatars")
		if err != nil {
			c.Error(err)
			return
		}
		upd.ProfilePicURL = &url
	}
	if fh, err := c.FormFile("resumeUrl"); err == nil {
		url, err := h.uploadValidated(c, fh, storage.KindResume, "resumes")
		if err != nil {
			c.Error(err)
			return
		}
		upd.ResumeURL = &url
	}

	user, err := h.userUC.UpdateProfile(c.Request.Context(), c.GetString(string(domain.KeyUserID)), upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// AppliedJobs godoc
// @Summary      My Applied Jobs
// @Description  Jobs the signed-in applicant applied to, with per-application status.
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/applied [get]
func (h *UserHandler) AppliedJobs(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can view applied jobs"))
		return
	}

	jobs, err := h.userUC.GetAppliedJobs(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applied jobs retrieved", jobs)
}

// SavedJobs godoc
// @Summary      My Saved Jobs
// @Description  The signed-in user's saved jobs, newest first.
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/saved [get]
func (h *UserHandler) SavedJobs(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can view saved jobs"))
		return
	}

	jobs, err := h.userUC.GetSavedJobs(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Saved jobs retrieved", jobs)
}

// SaveJob godoc
// @Summary      Save a Job
// @Description  Add a job to the signed-in user's saved list.
// @Tags         users
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/saved/{jobId} [post]
func (h *UserHandler) SaveJob(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can save jobs"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || jobID < 1 {
		c.Error(apperror.BadRequest("Invalid job id"))
		return
	}

	if err := h.userUC.SaveJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), jobID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job saved", nil)
}

// UnsaveJob godoc
// @Summary      Unsave a Job
// @Description  Remove a job from the signed-in user's saved list.
// @Tags         users
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Security     BearerAuth
// @Router       /users/saved/{jobId} [delete]
func (h *UserHandler) UnsaveJob(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.UserTypeApplicant {
		c.Error(apperror.Forbidden("Only applicants can save jobs"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil || jobID < 1 {
		c.Error(apperror.BadRequest("Invalid job id"))
		return
	}

	if err := h.userUC.UnsaveJob(c.Request.Context(), c.GetString(string(domain.KeyUserID)), jobID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job removed from saved list", nil)
}
