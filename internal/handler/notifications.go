package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wallblue4/tustockya-backend/internal/service"
)

type NotificationsHandler struct{ svc service.NotificationService }

func NewNotificationsHandler(svc service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{svc: svc}
}

// List godoc
// @Summary      The caller's return notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ReturnNotificationListResponse
// @Router       /v1/notifications/returns [get]
func (h *NotificationsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead godoc
// @Summary      Mark a return notification as read
// @Description  Idempotent: re-marking a read notification succeeds.
// @Tags         notifications
// @Security     BearerAuth
// @Param        id path string true "Notification UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/notifications/returns/{id}/read [post]
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), actorID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
