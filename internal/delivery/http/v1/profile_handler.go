package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const maxImageUploadBytes = 8 << 20

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

func NewProfileHandler(protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := protected.Group("/profile")
	{
		profile.GET("/me", handler.Me)
		profile.PUT("/me", handler.Update)
		profile.GET("/detailed", handler.Detailed)
		profile.GET("/detailed/:userId", handler.Detailed)

		profile.POST("/work-experience", handler.AddWorkExperience)
		profile.PUT("/work-experience/:experienceId", handler.UpdateWorkExperience)
		profile.DELETE("/work-experience/:experienceId", handler.DeleteWorkExperience)

		profile.GET("/search", handler.Search)
		profile.GET("/suggested", handler.Suggested)

		profile.POST("/connect/:connectionId", handler.Connect)
		profile.DELETE("/connect/:connectionId", handler.Disconnect)
		profile.GET("/connections", handler.Connections)
		profile.GET("/connections/:userId", handler.Connections)

		profile.POST("/image", handler.UploadImage)
		profile.DELETE("/image", handler.RemoveImage)
	}
}

// Me godoc
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.profileUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", user)
}

// Update godoc
// @Summary      Partially update own profile
// @Description  Empty strings and empty arrays are ignored
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfilePatch  true  "Profile patch"
// @Success      200   {object}  response.Response
// @Router       /profile/me [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	var patch domain.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.profileUC.UpdateProfile(c.Request.Context(), userID, &patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", user)
}

// Detailed godoc
// @Summary      Get a detailed profile with connection info
// @Tags         profile
// @Produce      json
// @Param        userId  path      string  false  "Target user id (defaults to self)"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /profile/detailed/{userId} [get]
// @Security     BearerAuth
func (h *ProfileHandler) Detailed(c *gin.Context) {
	currentUserID := c.GetString(string(domain.KeyUserID))
	targetID := c.Param("userId")
	if targetID == "" {
		targetID = currentUserID
	}

	profile, err := h.profileUC.GetDetailedProfile(c.Request.Context(), currentUserID, targetID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile fetched", profile)
}

// AddWorkExperience godoc
// @Summary      Add a work experience entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.WorkExperience  true  "Work experience"
// @Success      201   {object}  response.Response
// @Router       /profile/work-experience [post]
// @Security     BearerAuth
func (h *ProfileHandler) AddWorkExperience(c *gin.Context) {
	var exp domain.WorkExperience
	if err := c.ShouldBindJSON(&exp); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.profileUC.AddWorkExperience(c.Request.Context(), userID, &exp)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Work experience added", user)
}

// UpdateWorkExperience godoc
// @Summary      Update a work experience entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        experienceId  path      string                 true  "Experience id"
// @Param        body          body      domain.WorkExperience  true  "Work experience"
// @Success      200           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /profile/work-experience/{experienceId} [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateWorkExperience(c *gin.Context) {
	var exp domain.WorkExperience
	if err := c.ShouldBindJSON(&exp); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.profileUC.UpdateWorkExperience(c.Request.Context(), userID, c.Param("experienceId"), &exp)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work experience updated", user)
}

// DeleteWorkExperience godoc
// @Summary      Delete a work experience entry
// @Tags         profile
// @Produce      json
// @Param        experienceId  path      string  true  "Experience id"
// @Success      200           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /profile/work-experience/{experienceId} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) DeleteWorkExperience(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	user, err := h.profileUC.DeleteWorkExperience(c.Request.Context(), userID, c.Param("experienceId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Work experience deleted", user)
}

// Search godoc
// @Summary      Search alumni
// @Tags         profile
// @Produce      json
// @Param        name            query     string  false  "Name substring"
// @Param        graduationYear  query     int     false  "Exact graduation year"
// @Param        major           query     string  false  "Major substring"
// @Param        company         query     string  false  "Company substring"
// @Param        jobTitle        query     string  false  "Job title substring"
// @Param        skills          query     string  false  "Skill substring"
// @Param        university      query     string  false  "University substring"
// @Param        location        query     string  false  "Location substring"
// @Success      200             {object}  response.Response
// @Router       /profile/search [get]
// @Security     BearerAuth
func (h *ProfileHandler) Search(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("graduationYear"))
	filter := domain.AlumniFilter{
		Name:           c.Query("name"),
		GraduationYear: year,
		Major:          c.Query("major"),
		Company:        c.Query("company"),
		JobTitle:       c.Query("jobTitle"),
		Skills:         c.Query("skills"),
		University:     c.Query("university"),
		Location:       c.Query("location"),
	}

	users, err := h.profileUC.SearchAlumni(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Alumni fetched", users)
}

// Suggested godoc
// @Summary      Suggest alumni to connect with
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile/suggested [get]
// @Security     BearerAuth
func (h *ProfileHandler) Suggested(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	suggestions, err := h.profileUC.SuggestConnections(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Suggestions fetched", suggestions)
}

// Connect godoc
// @Summary      Connect with another alumni
// @Tags         profile
// @Produce      json
// @Param        connectionId  path      string  true  "Target user id"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /profile/connect/{connectionId} [post]
// @Security     BearerAuth
func (h *ProfileHandler) Connect(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.profileUC.AddConnection(c.Request.Context(), userID, c.Param("connectionId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection added", nil)
}

// Disconnect godoc
// @Summary      Remove a connection
// @Tags         profile
// @Produce      json
// @Param        connectionId  path      string  true  "Target user id"
// @Success      200           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /profile/connect/{connectionId} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) Disconnect(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.profileUC.RemoveConnection(c.Request.Context(), userID, c.Param("connectionId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Connection removed", nil)
}

// Connections godoc
// @Summary      List a user's connections
// @Tags         profile
// @Produce      json
// @Param        userId  path      string  false  "Target user id (defaults to self)"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /profile/connections/{userId} [get]
// @Security     BearerAuth
func (h *ProfileHandler) Connections(c *gin.Context) {
	currentUserID := c.GetString(string(domain.KeyUserID))

	connections, err := h.profileUC.GetConnections(c.Request.Context(), currentUserID, c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	// The requester never appears in a connection listing.
	filtered := make([]domain.UserSummary, 0, len(connections))
	for _, conn := range connections {
		if conn.ID != currentUserID {
			filtered = append(filtered, conn)
		}
	}
	response.Success(c, http.StatusOK, "Connections fetched", filtered)
}

// UploadImage godoc
// @Summary      Upload a profile image
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /profile/image [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.Error(apperror.BadRequest("Image file is required"))
		return
	}
	if fileHeader.Size > maxImageUploadBytes {
		c.Error(apperror.BadRequest("Image exceeds the maximum allowed size"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	url, err := h.profileUC.UploadProfileImage(c.Request.Context(), userID, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile image uploaded", gin.H{"profile_image": url})
}

// RemoveImage godoc
// @Summary      Remove the profile image
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /profile/image [delete]
// @Security     BearerAuth
func (h *ProfileHandler) RemoveImage(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if _, err := h.profileUC.RemoveProfileImage(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile image removed", nil)
}
