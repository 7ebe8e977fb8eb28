package v1

import (
	"net/http"

	"designhire-backend/config"
	"designhire-backend/internal/delivery/http/response"
	"designhire-backend/internal/domain"
	"designhire-backend/pkg/apperror"
	"designhire-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

const sessionCookieName = "token"

type AuthHandler struct {
	authUC domain.AuthUsecase
	config *config.Config
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase, cfg *config.Config) {
	handler := &AuthHandler{
		authUC: authUC,
		config: cfg,
	}

	authGroup := public.Group("/auth")
	{
		authGroup.POST("/signup", handler.SignUp)
		authGroup.POST("/signin", handler.SignIn)
		authGroup.POST("/logout", handler.Logout)
		authGroup.POST("/forgot-password", handler.ForgotPassword)
	}
}

type SignUpRequest struct {
	Name     string   `json:"name" binding:"required"`
	UserName string   `json:"userName" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	UserType string   `json:"userType" binding:"required,oneof=applicant recruiter"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

type SignInRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// setSessionCookie attaches the session token as an httpOnly cookie so
// browser clients never touch the raw JWT.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(auth.TokenTTL.Seconds()), "/", "", h.config.IsProduction(), true)
}

// SignUp godoc
// @Summary      User Registration
// @Description  Register a new applicant or recruiter account.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signup  body      SignUpRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Please enter all the fields"))
		return
	}

	user, token, err := h.authUC.SignUp(c.Request.Context(), &domain.SignUpInput{
		Name:     req.Name,
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
		Bio:      req.Bio,
		Skills:   req.Skills,
	})
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusCreated, "Account created", gin.H{
		"user":  user,
		"token": token,
	})
}

// SignIn godoc
// @Summary      User Login
// @Description  Authenticate with username and password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signin  body      SignInRequest  true  "Login Details"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Please enter all the fields"))
		return
	}

	user, token, err := h.authUC.SignIn(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, http.StatusOK, "Signed in", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout godoc
// @Summary      Logout
// @Description  Clear the session cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.config.IsProduction(), true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}

// ForgotPassword godoc
// @Summary      Forgot Password
// @Description  Send a password-reset link to the account's email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        forgot  body      ForgotPasswordRequest  true  "Account Email"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Please provide email"))
		return
	}

	if err := h.authUC.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset email sent", nil)
}
