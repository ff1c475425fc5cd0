package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
	"hr-portal-svc/pkg/utils"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListNotifications retrieves a user's notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param recipient_id query int true "Recipient user ID"
// @Param unread_only query bool false "Only unread notifications"
// @Success 200 {object} utils.APIResponse{data=[]models.Notification} "Notifications retrieved"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	recipientID, err := strconv.ParseUint(c.Query("recipient_id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "recipient_id query parameter is required", err)
		return
	}

	unreadOnly := c.Query("unread_only") == "true"

	notifications, err := h.notificationService.ListNotifications(uint(recipientID), unreadOnly)
	if err != nil {
		utils.InternalServerErrorResponse(c, "Failed to list notifications", err)
		return
	}

	utils.SuccessResponse(c, "Notifications retrieved successfully", notifications)
}

// MarkNotificationRead marks a notification as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse "Notification marked read"
// @Router /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", err)
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		utils.InternalServerErrorResponse(c, "Failed to mark notification read", err)
		return
	}

	utils.SuccessResponse(c, "Notification marked read", nil)
}
