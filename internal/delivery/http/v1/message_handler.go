package v1

import (
	"net/http"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

func NewMessageHandler(protected *gin.RouterGroup, messageUC domain.MessageUsecase) {
	handler := &MessageHandler{messageUC: messageUC}

	messages := protected.Group("/messages")
	{
		messages.POST("", handler.Send)
		messages.GET("/conversations", handler.Conversations)
		messages.PUT("/:id/read", handler.MarkRead)
	}
}

type SendMessageRequest struct {
	Receiver string `json:"receiver" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// Send godoc
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      SendMessageRequest  true  "Message JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /messages [post]
// @Security     BearerAuth
func (h *MessageHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	msg, err := h.messageUC.SendMessage(c.Request.Context(), userID, req.Receiver, req.Content)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Message sent", msg)
}

// Conversations godoc
// @Summary      List conversations grouped by counterpart
// @Tags         messages
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /messages/conversations [get]
// @Security     BearerAuth
func (h *MessageHandler) Conversations(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	conversations, err := h.messageUC.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Conversations fetched", conversations)
}

// MarkRead godoc
// @Summary      Mark a received message as read
// @Tags         messages
// @Produce      json
// @Param        id   path      int  true  "Message id"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /messages/{id}/read [put]
// @Security     BearerAuth
func (h *MessageHandler) MarkRead(c *gin.Context) {
	msgID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	msg, err := h.messageUC.MarkRead(c.Request.Context(), userID, msgID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Message marked as read", msg)
}
