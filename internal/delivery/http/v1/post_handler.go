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

type PostHandler struct {
	postUC domain.PostUsecase
}

func NewPostHandler(protected *gin.RouterGroup, postUC domain.PostUsecase) {
	handler := &PostHandler{postUC: postUC}

	posts := protected.Group("/posts")
	{
		posts.POST("", handler.Create)
		posts.GET("", handler.Feed)
		posts.POST("/:id/like", handler.ToggleLike)
		posts.POST("/:id/comment", handler.AddComment)
		posts.GET("/:id/comment", handler.ListComments)
		posts.DELETE("/:id/comment/:commentId", handler.DeleteComment)
		posts.DELETE("/:id", handler.Delete)
	}
}

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// Create godoc
// @Summary      Create a post
// @Description  Accepts multipart form data with a content field and an optional image
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        content  formData  string  true   "Post content"
// @Param        image    formData  file    false  "Image file"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /posts [post]
// @Security     BearerAuth
func (h *PostHandler) Create(c *gin.Context) {
	content := c.PostForm("content")

	var image []byte
	var contentType string
	if fileHeader, err := c.FormFile("image"); err == nil {
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

		image, err = io.ReadAll(file)
		if err != nil {
			c.Error(apperror.Internal(err))
			return
		}
		contentType = fileHeader.Header.Get("Content-Type")
	}

	userID := c.GetString(string(domain.KeyUserID))
	post, err := h.postUC.CreatePost(c.Request.Context(), userID, content, image, contentType)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Post created", post)
}

// Feed godoc
// @Summary      Get the personalized feed
// @Tags         posts
// @Produce      json
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        pageSize  query     int  false  "Page size (default 10)"
// @Success      200       {object}  response.Response
// @Router       /posts [get]
// @Security     BearerAuth
func (h *PostHandler) Feed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	userID := c.GetString(string(domain.KeyUserID))
	feed, err := h.postUC.ListFeed(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Feed fetched", feed)
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /posts/{id}/like [post]
// @Security     BearerAuth
func (h *PostHandler) ToggleLike(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	liked, err := h.postUC.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Like toggled", gin.H{"liked": liked})
}

// AddComment godoc
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Post id"
// @Param        body  body      AddCommentRequest  true  "Comment JSON"
// @Success      201   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /posts/{id}/comment [post]
// @Security     BearerAuth
func (h *PostHandler) AddComment(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.postUC.AddComment(c.Request.Context(), userID, postID, req.Comment); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Comment added", nil)
}

// ListComments godoc
// @Summary      List a post's comments
// @Tags         posts
// @Produce      json
// @Param        id        path      int  true   "Post id"
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        pageSize  query     int  false  "Page size (default 10)"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /posts/{id}/comment [get]
// @Security     BearerAuth
func (h *PostHandler) ListComments(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	comments, err := h.postUC.ListComments(c.Request.Context(), postID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comments fetched", comments)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         posts
// @Produce      json
// @Param        id         path      int     true  "Post id"
// @Param        commentId  path      string  true  "Comment id"
// @Success      200        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /posts/{id}/comment/{commentId} [delete]
// @Security     BearerAuth
func (h *PostHandler) DeleteComment(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.postUC.DeleteComment(c.Request.Context(), userID, postID, c.Param("commentId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Comment deleted", nil)
}

// Delete godoc
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post id"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /posts/{id} [delete]
// @Security     BearerAuth
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.postUC.DeletePost(c.Request.Context(), userID, postID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Post deleted", nil)
}
