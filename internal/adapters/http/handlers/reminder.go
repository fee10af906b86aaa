package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
	"github.com/dailydose/dailydose/internal/app"
)

// ReminderHandler previews the daily quote notification.
type ReminderHandler struct {
	reminders *app.ReminderService
}

// NewReminderHandler creates a reminder handler.
func NewReminderHandler(reminders *app.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

// Get handles GET /reminder. It always answers 200; the fallback text is
// used when today's quote is unavailable.
func (h *ReminderHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, dto.FromReminder(h.reminders.Compose(ctx), h.reminders.Enabled(ctx)))
}

// RegisterRoutes mounts the reminder route on rg.
func (h *ReminderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reminder", h.Get)
}
