package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailydose/dailydose/internal/adapters/kvstore"
	"github.com/dailydose/dailydose/internal/domain"
)

func TestSettingsService_Defaults(t *testing.T) {
	s := NewSettingsService(kvstore.NewMemory(), discardLogger())

	got := s.GetSettings(context.Background())

	assert.Equal(t, domain.Settings{
		Theme:                domain.ThemeLight,
		NotificationsEnabled: true,
		DailyQuoteEnabled:    true,
	}, got)
}

func TestSettingsService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	s := NewSettingsService(store, discardLogger())

	require.NoError(t, s.SetTheme(ctx, domain.ThemeDark))
	require.NoError(t, s.SetNotifications(ctx, false))
	require.NoError(t, s.SetDailyQuote(ctx, false))
	require.NoError(t, s.MarkOnboardingSeen(ctx))

	got := s.GetSettings(ctx)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	assert.False(t, got.NotificationsEnabled)
	assert.False(t, got.DailyQuoteEnabled)
	assert.True(t, got.HasSeenOnboarding)
	assert.False(t, s.DailyQuoteEnabled(ctx))

	entry, err := store.Get(ctx, KeyHasSeenOnboarding)
	require.NoError(t, err)
	assert.Equal(t, `"true"`, string(entry.Value))

	require.NoError(t, s.ResetOnboarding(ctx))
	assert.False(t, s.GetSettings(ctx).HasSeenOnboarding)
}

func TestSettingsService_RejectsUnknownTheme(t *testing.T) {
	s := NewSettingsService(kvstore.NewMemory(), discardLogger())

	err := s.SetTheme(context.Background(), domain.Theme("sepia"))

	assert.True(t, domain.IsValidation(err))
}

func TestSettingsService_MalformedValuesUseDefaults(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	s := NewSettingsService(store, discardLogger())

	_, _ = store.Set(ctx, KeyTheme, []byte(`"purple"`))
	_, _ = store.Set(ctx, KeyDailyQuote, []byte(`"maybe"`))
	_, _ = store.Set(ctx, KeyNotifications, []byte(`{`))

	got := s.GetSettings(ctx)
	assert.Equal(t, domain.ThemeLight, got.Theme)
	assert.True(t, got.DailyQuoteEnabled)
	assert.True(t, got.NotificationsEnabled)
}

func TestSettingsService_ReadsBareValues(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	s := NewSettingsService(store, discardLogger())

	_, _ = store.Set(ctx, KeyTheme, []byte("dark"))
	_, _ = store.Set(ctx, KeyDailyQuote, []byte("false"))
	_, _ = store.Set(ctx, KeyNotifications, []byte("false"))
	_, _ = store.Set(ctx, KeyHasSeenOnboarding, []byte("true"))

	got := s.GetSettings(ctx)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	assert.False(t, got.DailyQuoteEnabled)
	assert.False(t, got.NotificationsEnabled)
	assert.True(t, got.HasSeenOnboarding)
	assert.False(t, s.DailyQuoteEnabled(ctx))
}

func TestSettingsService_WriteFailure(t *testing.T) {
	store := newFaultyStore()
	store.failWrite = true

	s := NewSettingsService(store, discardLogger())

	err := s.SetNotifications(context.Background(), true)
	assert.True(t, domain.IsUnavailable(err))
}

func TestProfileService_SaveMerges(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	p := NewProfileService(store, NewSettingsService(store, discardLogger()), discardLogger())

	_, ok := p.GetProfile(ctx)
	assert.False(t, ok)

	_, err := p.SaveProfile(ctx, domain.ProfilePatch{Name: ptr("Liya"), Mood: ptr("calm")})
	require.NoError(t, err)

	merged, err := p.SaveProfile(ctx, domain.ProfilePatch{Mood: ptr("happy")})
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{Name: "Liya", Mood: "happy"}, *merged)

	got, ok := p.GetProfile(ctx)
	require.True(t, ok)
	assert.Equal(t, *merged, *got)
}

func TestProfileService_SaveClearsField(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	p := NewProfileService(store, NewSettingsService(store, discardLogger()), discardLogger())

	_, err := p.SaveProfile(ctx, domain.ProfilePatch{Name: ptr("Liya"), Bio: ptr("old bio")})
	require.NoError(t, err)

	_, err = p.SaveProfile(ctx, domain.ProfilePatch{Name: ptr("Liya"), Bio: ptr("")})
	require.NoError(t, err)

	got, ok := p.GetProfile(ctx)
	require.True(t, ok)
	assert.Empty(t, got.Bio)
	assert.Equal(t, "Liya", got.Name)
}

func TestProfileService_CompletePersonalize(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	settings := NewSettingsService(store, discardLogger())
	p := NewProfileService(store, settings, discardLogger())

	_, err := p.SaveProfile(ctx, domain.ProfilePatch{Bio: ptr("old")})
	require.NoError(t, err)

	require.NoError(t, p.CompletePersonalize(ctx, domain.Profile{Name: "Liya", Theme: "dark"}))

	got, ok := p.GetProfile(ctx)
	require.True(t, ok)
	assert.Empty(t, got.Bio, "personalize replaces the profile")

	s := settings.GetSettings(ctx)
	assert.True(t, s.HasCompletedPersonalize)
	assert.Equal(t, domain.ThemeDark, s.Theme)
}

func TestProfileService_CorruptProfileIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	_, _ = store.Set(ctx, KeyProfile, []byte(`"not an object"`))

	p := NewProfileService(store, NewSettingsService(store, discardLogger()), discardLogger())

	_, ok := p.GetProfile(ctx)
	assert.False(t, ok)
}

func TestReminderService(t *testing.T) {
	ctx := context.Background()

	newReminder := func(t *testing.T) (*quoteServiceFixture, *ReminderService) {
		t.Helper()

		f := newQuoteServiceFixture(t)
		settings := NewSettingsService(kvstore.NewMemory(), discardLogger())

		return f, NewReminderService(ReminderServiceConfig{
			Quotes:   f.svc,
			Settings: settings,
			Logger:   discardLogger(),
			Hour:     DefaultReminderHour,
			Minute:   DefaultReminderMinute,
		})
	}

	t.Run("uses today's quote", func(t *testing.T) {
		f, r := newReminder(t)
		f.source.EXPECT().QuoteOfTheDay(mock.Anything).
			Return(&domain.Quote{UUID: "a", Text: "Be kind", Author: "X"}, nil).Once()

		got := r.Compose(ctx)
		assert.Equal(t, "\"Be kind\"\n X", got.Body)
		assert.Equal(t, 8, got.Hour)
		assert.True(t, r.Enabled(ctx))
	})

	t.Run("falls back when the quote is unavailable", func(t *testing.T) {
		f, r := newReminder(t)
		f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(nil, errAPIDown).Once()

		got := r.Compose(ctx)
		assert.Equal(t, "\"Stay positive and keep going!\"\n DailyDose", got.Body)
		assert.Equal(t, "daily-quote", got.Data["type"])
	})
}
