package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/domain"
)

// ProfileHandler serves the personal profile and the device settings.
type ProfileHandler struct {
	profile  *app.ProfileService
	settings *app.SettingsService
}

// NewProfileHandler creates a profile handler.
func NewProfileHandler(profile *app.ProfileService, settings *app.SettingsService) *ProfileHandler {
	return &ProfileHandler{profile: profile, settings: settings}
}

// GetProfile handles GET /profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, ok := h.profile.GetProfile(c.Request.Context())
	if !ok {
		dto.HandleError(c, domain.NewNotFoundError("profile", ""))
		return
	}

	c.JSON(http.StatusOK, dto.FromProfile(p))
}

// PatchProfile handles PATCH /profile. Omitted fields keep their stored value.
func (h *ProfileHandler) PatchProfile(c *gin.Context) {
	var body dto.ProfileBody
	if err := dto.BindAndValidate(c, &body); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	p, err := h.profile.SaveProfile(c.Request.Context(), body.ToPatch())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProfile(p))
}

// CompleteProfile handles POST /profile/complete: it stores the wizard's
// answers and marks personalization done. It returns the new settings.
func (h *ProfileHandler) CompleteProfile(c *gin.Context) {
	var body dto.ProfileBody
	if err := dto.BindAndValidate(c, &body); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	ctx := c.Request.Context()

	if err := h.profile.CompletePersonalize(ctx, body.ToProfile()); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSettings(h.settings.GetSettings(ctx)))
}

// GetSettings handles GET /settings.
func (h *ProfileHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromSettings(h.settings.GetSettings(c.Request.Context())))
}

// PutTheme handles PUT /settings/theme.
func (h *ProfileHandler) PutTheme(c *gin.Context) {
	var req dto.ThemeRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	h.apply(c, func(s *app.SettingsService) error {
		return s.SetTheme(c.Request.Context(), domain.Theme(req.Theme))
	})
}

// PutNotifications handles PUT /settings/notifications.
func (h *ProfileHandler) PutNotifications(c *gin.Context) {
	h.applyToggle(c, (*app.SettingsService).SetNotifications)
}

// PutDailyQuote handles PUT /settings/daily-quote.
func (h *ProfileHandler) PutDailyQuote(c *gin.Context) {
	h.applyToggle(c, (*app.SettingsService).SetDailyQuote)
}

// MarkOnboarding handles POST /settings/onboarding.
func (h *ProfileHandler) MarkOnboarding(c *gin.Context) {
	h.apply(c, func(s *app.SettingsService) error {
		return s.MarkOnboardingSeen(c.Request.Context())
	})
}

// ResetOnboarding handles DELETE /settings/onboarding.
func (h *ProfileHandler) ResetOnboarding(c *gin.Context) {
	h.apply(c, func(s *app.SettingsService) error {
		return s.ResetOnboarding(c.Request.Context())
	})
}

func (h *ProfileHandler) applyToggle(c *gin.Context, set func(*app.SettingsService, context.Context, bool) error) {
	var req dto.ToggleRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	h.apply(c, func(s *app.SettingsService) error {
		return set(s, c.Request.Context(), *req.Enabled)
	})
}

// apply runs a settings write and answers with the resulting settings.
func (h *ProfileHandler) apply(c *gin.Context, write func(*app.SettingsService) error) {
	if err := write(h.settings); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSettings(h.settings.GetSettings(c.Request.Context())))
}

// RegisterRoutes mounts the profile and settings routes on rg.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.GET("", h.GetProfile)
	profile.PATCH("", h.PatchProfile)
	profile.POST("/complete", h.CompleteProfile)

	settings := rg.Group("/settings")
	settings.GET("", h.GetSettings)
	settings.PUT("/theme", h.PutTheme)
	settings.PUT("/notifications", h.PutNotifications)
	settings.PUT("/daily-quote", h.PutDailyQuote)
	settings.POST("/onboarding", h.MarkOnboarding)
	settings.DELETE("/onboarding", h.ResetOnboarding)
}
