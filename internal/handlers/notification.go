package handlers

import (
	"net/http"
	"strconv"

	"cbt-portal-backend/internal/services"
	"cbt-portal-backend/internal/ws"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	hub                 *ws.Hub
}

func NewNotificationHandler(notificationService *services.NotificationService, hub *ws.Hub) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, hub: hub}
}

type SendNotificationRequest struct {
	Title   string `json:"title" binding:"required,max=255" example:"New JAMB questions"`
	Message string `json:"message" binding:"required" example:"200 new Mathematics questions were added."`
}

// Send godoc
// @Summary      Send a notification to all students
// @Description  Persists the notification and pushes it to connected websocket clients
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SendNotificationRequest true "Notification"
// @Success      201 {object} models.Notification
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/notifications [post]
func (h *NotificationHandler) Send(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	notification, err := h.notificationService.Create(currentUserID(c), req.Title, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	h.hub.Broadcast(ws.WSMessage{Type: "notification", Data: notification})

	c.JSON(http.StatusCreated, notification)
}

// List godoc
// @Summary      List recent notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of entries" default(20)
// @Success      200 {array} models.Notification
// @Router       /api/v1/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifications, err := h.notificationService.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
