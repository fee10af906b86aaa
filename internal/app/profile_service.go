package app

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/ports"
)

// ProfileService stores the user's personal data.
type ProfileService struct {
	kv       ports.KeyValueStore
	settings *SettingsService
	logger   *slog.Logger

	mu sync.Mutex
}

// NewProfileService creates a profile service. It panics if store or settings is nil.
func NewProfileService(store ports.KeyValueStore, settings *SettingsService, logger *slog.Logger) *ProfileService {
	if store == nil || settings == nil {
		panic("app: profile service requires a key-value store and settings service")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileService{
		kv:       store,
		settings: settings,
		logger:   logger.With(slog.String("component", "profile")),
	}
}

// GetProfile returns the stored profile, or false if none is stored or it
// cannot be decoded.
func (s *ProfileService) GetProfile(ctx context.Context) (*domain.Profile, bool) {
	entry, err := s.kv.Get(ctx, KeyProfile)
	if errors.Is(err, ports.ErrKeyNotFound) {
		return nil, false
	}

	if err != nil {
		s.logger.WarnContext(ctx, "reading profile failed", slog.Any("error", err))
		return nil, false
	}

	var p domain.Profile
	if err := json.Unmarshal(entry.Value, &p); err != nil {
		s.logger.WarnContext(ctx, "decoding profile failed", slog.Any("error", err))
		return nil, false
	}

	return &p, true
}

// SaveProfile applies the set fields of patch over the stored profile.
func (s *ProfileService) SaveProfile(ctx context.Context, patch domain.ProfilePatch) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current domain.Profile
	if stored, ok := s.GetProfile(ctx); ok {
		current = *stored
	}

	merged := current.Merge(patch)
	if err := s.write(ctx, merged); err != nil {
		return nil, err
	}

	return &merged, nil
}

// CompletePersonalize replaces the profile with the wizard's answers and
// marks personalization as done.
func (s *ProfileService) CompletePersonalize(ctx context.Context, p domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, p); err != nil {
		return err
	}

	if err := s.settings.writeFlag(ctx, KeyHasCompletedPersonalize, true); err != nil {
		return err
	}

	if theme := domain.Theme(p.Theme); theme.Valid() {
		return s.settings.SetTheme(ctx, theme)
	}

	return nil
}

func (s *ProfileService) write(ctx context.Context, p domain.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}

	if _, err := s.kv.Set(ctx, KeyProfile, data); err != nil {
		return domain.NewUnavailableError("profile", err)
	}

	return nil
}
