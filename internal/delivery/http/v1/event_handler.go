package v1

import (
	"net/http"
	"time"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUC domain.EventUsecase
}

func NewEventHandler(protected *gin.RouterGroup, eventUC domain.EventUsecase) {
	handler := &EventHandler{eventUC: eventUC}

	events := protected.Group("/events")
	{
		events.POST("", handler.Create)
		events.GET("", handler.List)
		events.POST("/:id/register", handler.Register)
	}
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Location    string    `json:"location" binding:"required"`
}

// Create godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body      CreateEventRequest  true  "Event JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   req.Date,
		Location:    req.Location,
	}

	userID := c.GetString(string(domain.KeyUserID))
	if err := h.eventUC.CreateEvent(c.Request.Context(), userID, event); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Event created", event)
}

// List godoc
// @Summary      List upcoming events
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventUC.ListEvents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Events fetched", events)
}

// Register godoc
// @Summary      Register for an event
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /events/{id}/register [post]
// @Security     BearerAuth
func (h *EventHandler) Register(c *gin.Context) {
	eventID, err := parseID(c, "id")
	if err != nil {
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	event, err := h.eventUC.RegisterForEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Registered for event", event)
}
