package dto

import "github.com/dailydose/dailydose/internal/domain"

// ProfileBody is the profile as written over HTTP. On PATCH, an omitted
// field keeps the stored value and an empty string clears it.
type ProfileBody struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Username   *string `json:"username,omitempty" validate:"omitempty,max=50"`
	Birthday   *string `json:"birthday,omitempty" validate:"omitempty,max=32"`
	Gender     *string `json:"gender,omitempty" validate:"omitempty,max=32"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Religion   *string `json:"religion,omitempty" validate:"omitempty,max=64"`
	Mood       *string `json:"mood,omitempty" validate:"omitempty,max=64"`
	LifeAspect *string `json:"lifeAspect,omitempty" validate:"omitempty,max=64"`
	Theme      *string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	Frequency  *string `json:"frequency,omitempty" validate:"omitempty,max=32"`
	ImageURI   *string `json:"imageUri,omitempty" validate:"omitempty,max=2048"`
}

// ToPatch converts the body into a partial update.
func (b *ProfileBody) ToPatch() domain.ProfilePatch {
	return domain.ProfilePatch{
		Name:       b.Name,
		Username:   b.Username,
		Birthday:   b.Birthday,
		Gender:     b.Gender,
		Bio:        b.Bio,
		Religion:   b.Religion,
		Mood:       b.Mood,
		LifeAspect: b.LifeAspect,
		Theme:      b.Theme,
		Frequency:  b.Frequency,
		ImageURI:   b.ImageURI,
	}
}

// ToProfile converts the body into a whole profile; omitted fields are empty.
func (b *ProfileBody) ToProfile() domain.Profile {
	return domain.Profile{}.Merge(b.ToPatch())
}

// ProfileResponse is the stored profile as read over HTTP.
type ProfileResponse struct {
	Name       string `json:"name,omitempty"`
	Username   string `json:"username,omitempty"`
	Birthday   string `json:"birthday,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Religion   string `json:"religion,omitempty"`
	Mood       string `json:"mood,omitempty"`
	LifeAspect string `json:"lifeAspect,omitempty"`
	Theme      string `json:"theme,omitempty"`
	Frequency  string `json:"frequency,omitempty"`
	ImageURI   string `json:"imageUri,omitempty"`
}

// FromProfile converts a stored profile.
func FromProfile(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		Name:       p.Name,
		Username:   p.Username,
		Birthday:   p.Birthday,
		Gender:     p.Gender,
		Bio:        p.Bio,
		Religion:   p.Religion,
		Mood:       p.Mood,
		LifeAspect: p.LifeAspect,
		Theme:      p.Theme,
		Frequency:  p.Frequency,
		ImageURI:   p.ImageURI,
	}
}

// SettingsResponse mirrors domain.Settings.
type SettingsResponse struct {
	HasSeenOnboarding       bool   `json:"hasSeenOnboarding"`
	HasCompletedPersonalize bool   `json:"hasCompletedPersonalize"`
	Theme                   string `json:"theme"`
	NotificationsEnabled    bool   `json:"notificationsEnabled"`
	DailyQuoteEnabled       bool   `json:"dailyQuoteEnabled"`
}

// FromSettings converts the settings snapshot.
func FromSettings(s domain.Settings) SettingsResponse {
	return SettingsResponse{
		HasSeenOnboarding:       s.HasSeenOnboarding,
		HasCompletedPersonalize: s.HasCompletedPersonalize,
		Theme:                   string(s.Theme),
		NotificationsEnabled:    s.NotificationsEnabled,
		DailyQuoteEnabled:       s.DailyQuoteEnabled,
	}
}

// ThemeRequest is the body of PUT /settings/theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// ToggleRequest is the body of the boolean settings endpoints. A pointer
// so that an explicit false passes the required check.
type ToggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// ReminderResponse is the daily notification as it would be scheduled.
type ReminderResponse struct {
	Enabled bool              `json:"enabled"`
	Title   string            `json:"title"`
	Body    string            `json:"body"`
	Hour    int               `json:"hour"`
	Minute  int               `json:"minute"`
	Repeats bool              `json:"repeats"`
	Data    map[string]string `json:"data"`
}

// FromReminder converts a composed reminder.
func FromReminder(r domain.Reminder, enabled bool) ReminderResponse {
	return ReminderResponse{
		Enabled: enabled,
		Title:   r.Title,
		Body:    r.Body,
		Hour:    r.Hour,
		Minute:  r.Minute,
		Repeats: r.Repeats,
		Data:    r.Data,
	}
}
