package v1

import (
	"net/http"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}
}

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Name           string `json:"name" binding:"required"`
	GraduationYear int    `json:"graduation_year" binding:"required"`
	Major          string `json:"major" binding:"required"`
	Degree         string `json:"degree" binding:"required"`
	University     string `json:"university" binding:"required"`
	CurrentJob     string `json:"current_job"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary      Register a new alumni account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "Registration JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user := &domain.User{
		Email:          req.Email,
		Name:           req.Name,
		GraduationYear: req.GraduationYear,
		Major:          req.Major,
		Degree:         req.Degree,
		University:     req.University,
		CurrentJob:     req.CurrentJob,
	}

	token, err := h.authUC.Register(c.Request.Context(), user, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registered successfully", gin.H{"token": token})
}

// Login godoc
// @Summary      Authenticate and obtain a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Login JSON"
// @Success      200   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logged in successfully", gin.H{"token": token})
}
