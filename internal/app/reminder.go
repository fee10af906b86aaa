package app

import (
	"context"
	"log/slog"

	"github.com/dailydose/dailydose/internal/domain"
)

// Default trigger time of the daily reminder.
const (
	DefaultReminderHour   = 8
	DefaultReminderMinute = 0
)

// ReminderService composes the daily quote notification.
type ReminderService struct {
	quotes   *QuoteService
	settings *SettingsService
	logger   *slog.Logger
	hour     int
	minute   int
}

// ReminderServiceConfig contains the dependencies of the reminder service.
type ReminderServiceConfig struct {
	Quotes   *QuoteService
	Settings *SettingsService
	Logger   *slog.Logger
	Hour     int
	Minute   int
}

// NewReminderService creates a reminder service.
func NewReminderService(cfg ReminderServiceConfig) *ReminderService {
	if cfg.Quotes == nil || cfg.Settings == nil {
		panic("app: reminder service requires quote and settings services")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ReminderService{
		quotes:   cfg.Quotes,
		settings: cfg.Settings,
		logger:   logger,
		hour:     cfg.Hour,
		minute:   cfg.Minute,
	}
}

// Compose builds the reminder from today's quote. It never fails: when the
// quote cannot be fetched the fixed fallback text is used.
func (s *ReminderService) Compose(ctx context.Context) domain.Reminder {
	q, err := s.quotes.QuoteOfTheDay(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "composing reminder with fallback quote", slog.Any("error", err))
		q = nil
	}

	return domain.NewReminder(q, s.hour, s.minute)
}

// Enabled reports whether the user wants the daily reminder.
func (s *ReminderService) Enabled(ctx context.Context) bool {
	return s.settings.DailyQuoteEnabled(ctx)
}
