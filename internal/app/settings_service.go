package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/ports"
)

// Storage keys owned by the settings and profile services.
const (
	KeyProfile                 = "userPersonalData"
	KeyHasSeenOnboarding       = "hasSeenOnboarding"
	KeyHasCompletedPersonalize = "hasCompletedPersonalize"
	KeyTheme                   = "userTheme"
	KeyNotifications           = "userNotifications"
	KeyDailyQuote              = "userDailyQuote"
)

// SettingsService reads and writes device preferences. Values are written as
// JSON strings; bare values such as dark or false are also accepted on read.
type SettingsService struct {
	kv     ports.KeyValueStore
	logger *slog.Logger
}

// NewSettingsService creates a settings service. It panics if store is nil.
func NewSettingsService(store ports.KeyValueStore, logger *slog.Logger) *SettingsService {
	if store == nil {
		panic("app: settings service requires a key-value store")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsService{kv: store, logger: logger.With(slog.String("component", "settings"))}
}

// GetSettings returns the current preferences with defaults applied.
func (s *SettingsService) GetSettings(ctx context.Context) domain.Settings {
	theme, _ := s.readString(ctx, KeyTheme)

	return domain.Settings{
		HasSeenOnboarding:       s.readFlag(ctx, KeyHasSeenOnboarding, false),
		HasCompletedPersonalize: s.readFlag(ctx, KeyHasCompletedPersonalize, false),
		Theme:                   domain.ParseTheme(theme),
		NotificationsEnabled:    s.readFlag(ctx, KeyNotifications, true),
		DailyQuoteEnabled:       s.readFlag(ctx, KeyDailyQuote, true),
	}
}

// SetTheme stores the theme. Unknown themes are rejected.
func (s *SettingsService) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.Valid() {
		return domain.NewValidationErrorWithValue("theme", "must be light or dark", string(theme))
	}

	return s.writeString(ctx, KeyTheme, string(theme))
}

// SetNotifications toggles notifications.
func (s *SettingsService) SetNotifications(ctx context.Context, enabled bool) error {
	return s.writeFlag(ctx, KeyNotifications, enabled)
}

// SetDailyQuote toggles the daily quote reminder.
func (s *SettingsService) SetDailyQuote(ctx context.Context, enabled bool) error {
	return s.writeFlag(ctx, KeyDailyQuote, enabled)
}

// MarkOnboardingSeen records that onboarding was shown.
func (s *SettingsService) MarkOnboardingSeen(ctx context.Context) error {
	return s.writeFlag(ctx, KeyHasSeenOnboarding, true)
}

// ResetOnboarding forgets that onboarding was shown.
func (s *SettingsService) ResetOnboarding(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyHasSeenOnboarding); err != nil {
		return domain.NewUnavailableError("settings", err)
	}

	return nil
}

// DailyQuoteEnabled mirrors the userDailyQuote setting.
func (s *SettingsService) DailyQuoteEnabled(ctx context.Context) bool {
	return s.readFlag(ctx, KeyDailyQuote, true)
}

func (s *SettingsService) readFlag(ctx context.Context, key string, def bool) bool {
	raw, ok := s.readString(ctx, key)
	if !ok {
		return def
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		s.logger.WarnContext(ctx, "ignoring malformed flag", slog.String("key", key), slog.String("value", raw))
		return def
	}

	return v
}

func (s *SettingsService) writeFlag(ctx context.Context, key string, v bool) error {
	return s.writeString(ctx, key, strconv.FormatBool(v))
}

func (s *SettingsService) readString(ctx context.Context, key string) (string, bool) {
	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return "", false
	}

	if err != nil {
		s.logger.WarnContext(ctx, "reading setting failed", slog.String("key", key), slog.Any("error", err))
		return "", false
	}

	var v string
	if err := json.Unmarshal(entry.Value, &v); err != nil {
		return string(entry.Value), true
	}

	return v, true
}

func (s *SettingsService) writeString(ctx context.Context, key, v string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	if _, err := s.kv.Set(ctx, key, data); err != nil {
		return domain.NewUnavailableError("settings", err)
	}

	return nil
}
