package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
	"github.com/dailydose/dailydose/internal/adapters/kvstore"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/domain"
	"github.com/dailydose/dailydose/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errAPIDown = domain.NewUnavailableError("quote-api", errors.New("connection refused"))

type fixture struct {
	source    *mocks.MockQuoteSource
	favorites *app.FavoritesStore
	router    *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := kvstore.NewMemory()
	source := mocks.NewMockQuoteSource(t)

	favorites := app.NewFavoritesStore(app.FavoritesStoreConfig{Store: kv, Logger: logger})
	cache := app.NewQuoteCache(app.QuoteCacheConfig{Store: kv, Logger: logger})
	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Source:    source,
		Cache:     cache,
		Favorites: favorites,
		Logger:    logger,
		IntN:      func(int) int { return 0 },
	})
	settings := app.NewSettingsService(kv, logger)
	profile := app.NewProfileService(kv, settings, logger)
	reminders := app.NewReminderService(app.ReminderServiceConfig{
		Quotes:   quotes,
		Settings: settings,
		Logger:   logger,
		Hour:     8,
	})

	router := gin.New()
	api := router.Group("/api/v1")
	NewQuoteHandler(quotes, favorites).RegisterRoutes(api)
	NewFavoritesHandler(favorites, quotes).RegisterRoutes(api)
	NewCacheHandler(cache).RegisterRoutes(api)
	NewProfileHandler(profile, settings).RegisterRoutes(api)
	NewReminderHandler(reminders).RegisterRoutes(api)

	return &fixture{source: source, favorites: favorites, router: router}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func quote(uuid, text string) *domain.Quote {
	return &domain.Quote{UUID: uuid, Text: text, Author: "Author " + uuid}
}

func TestQuotes_Today(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(quote("a1", "Be kind"), nil)
	require.NoError(t, f.favorites.AddFavorite(t.Context(), *quote("a1", "Be kind")))

	w := f.do(t, http.MethodGet, "/api/v1/quotes/today", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.QuoteResponse](t, w)
	assert.Equal(t, "a1", got.UUID)
	assert.Equal(t, "Be kind", got.Quote)
	require.NotNil(t, got.Favorite)
	assert.True(t, *got.Favorite)
}

func TestQuotes_TodayFallsBackToCache(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(quote("a1", "Be kind"), nil).Once()
	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(nil, errAPIDown).Once()

	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/quotes/today", nil).Code)

	w := f.do(t, http.MethodGet, "/api/v1/quotes/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", decode[dto.QuoteResponse](t, w).UUID)
}

func TestQuotes_TodayUnavailable(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(nil, errAPIDown)

	w := f.do(t, http.MethodGet, "/api/v1/quotes/today", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeUnavailable, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "refused")
}

func TestQuotes_RandomByCategory(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().ListQuotesByCategory(mock.Anything, "love").
		Return([]domain.Quote{*quote("a1", "Love"), *quote("b2", "More love")}, nil)
	f.source.EXPECT().QuoteByUUID(mock.Anything, "a1").Return(quote("a1", "Love"), nil)

	w := f.do(t, http.MethodGet, "/api/v1/quotes/random?category=love", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.QuoteResponse](t, w)
	assert.Equal(t, "a1", got.UUID)
	require.NotNil(t, got.Favorite)
	assert.False(t, *got.Favorite)
}

func TestQuotes_RandomEmptyCategory(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().ListQuotesByCategory(mock.Anything, "none").Return(nil, nil)

	w := f.do(t, http.MethodGet, "/api/v1/quotes/random?category=none", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuotes_ByUUIDNotFound(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteByUUID(mock.Anything, "zz").Return(nil, domain.NewNotFoundError("quote", "zz"))

	w := f.do(t, http.MethodGet, "/api/v1/quotes/zz", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeNotFound, decode[dto.ErrorResponse](t, w).Error.Code)
}

func TestQuotes_ByLegacyID(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteByID(mock.Anything, int64(7)).Return(quote("a1", "Be kind"), nil)

	w := f.do(t, http.MethodGet, "/api/v1/quotes/id/7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", decode[dto.QuoteResponse](t, w).UUID)

	w = f.do(t, http.MethodGet, "/api/v1/quotes/id/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/quotes/id/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuotes_Categories(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().Categories(mock.Anything).Return([]domain.Category{{ID: 1, Name: "love"}, {ID: 2, Name: "hope"}}, nil)

	w := f.do(t, http.MethodGet, "/api/v1/categories", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"love"},{"id":2,"name":"hope"}]`, w.Body.String())
}

func TestQuotes_HomePartial(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(nil, errAPIDown)
	f.source.EXPECT().ListQuotes(mock.Anything).Return([]domain.Quote{*quote("b2", "Hope")}, nil)
	f.source.EXPECT().QuoteByUUID(mock.Anything, "b2").Return(quote("b2", "Hope"), nil)

	w := f.do(t, http.MethodGet, "/api/v1/home", nil)

	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.HomeResponse](t, w)
	assert.Nil(t, got.Today)
	require.NotNil(t, got.Random)
	assert.Equal(t, "b2", got.Random.UUID)
}

func TestQuotes_HomeBothFail(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(nil, errAPIDown)
	f.source.EXPECT().ListQuotes(mock.Anything).Return(nil, errAPIDown)

	w := f.do(t, http.MethodGet, "/api/v1/home", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFavorites_Lifecycle(t *testing.T) {
	f := newFixture(t)
	body := dto.QuoteRequest{Quote: "Be kind", Author: "X"}

	w := f.do(t, http.MethodPut, "/api/v1/favorites/a1", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "a1", decode[dto.QuoteResponse](t, w).UUID)

	w = f.do(t, http.MethodPut, "/api/v1/favorites/a1", dto.QuoteRequest{Quote: "Changed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Be kind", decode[dto.QuoteResponse](t, w).Quote)

	w = f.do(t, http.MethodGet, "/api/v1/favorites/a1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Be kind", decode[dto.QuoteResponse](t, w).Quote)

	w = f.do(t, http.MethodDelete, "/api/v1/favorites/a1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/favorites/a1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/favorites/a1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestFavorites_PutRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPut, "/api/v1/favorites/a1", dto.QuoteRequest{UUID: "b2", Quote: "Be kind"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "does not match the path", decode[dto.ErrorResponse](t, w).Error.Details["uuid"])

	w = f.do(t, http.MethodPut, "/api/v1/favorites/a1", dto.QuoteRequest{Quote: " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, w).Error.Details, "quote")

	assert.False(t, f.favorites.IsFavorite(t.Context(), "a1"))
}

func TestFavorites_ListPages(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"c3", "a1", "b2"} {
		require.NoError(t, f.favorites.AddFavorite(t.Context(), *quote(id, "text "+id)))
	}

	w := f.do(t, http.MethodGet, "/api/v1/favorites?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	first := decode[dto.PaginatedResponse[dto.QuoteResponse]](t, w)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "a1", first.Items[0].UUID)
	assert.Equal(t, "b2", first.Items[1].UUID)
	assert.True(t, first.HasMore)
	require.NotEmpty(t, first.NextCursor)

	w = f.do(t, http.MethodGet, "/api/v1/favorites?limit=2&cursor="+first.NextCursor, nil)
	require.Equal(t, http.StatusOK, w.Code)

	second := decode[dto.PaginatedResponse[dto.QuoteResponse]](t, w)
	require.Len(t, second.Items, 1)
	assert.Equal(t, "c3", second.Items[0].UUID)
	assert.False(t, second.HasMore)
}

func TestFavorites_ListRejectsBadQuery(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/favorites?cursor=%21%21", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/favorites?limit=500", nil).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/v1/favorites?limit=abc", nil).Code)
}

func TestFavorites_ToggleFetchesQuote(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteByUUID(mock.Anything, "z9").Return(quote("z9", "Persist"), nil).Once()

	w := f.do(t, http.MethodPost, "/api/v1/favorites/z9/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ToggleResponse{UUID: "z9", Favorite: true}, decode[dto.ToggleResponse](t, w))

	stored, err := f.favorites.Favorite(t.Context(), "z9")
	require.NoError(t, err)
	assert.Equal(t, "Persist", stored.Text)

	w = f.do(t, http.MethodPost, "/api/v1/favorites/z9/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.ToggleResponse](t, w).Favorite)
}

func TestFavorites_ToggleWithBody(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/favorites/a1/toggle", dto.QuoteRequest{Quote: "Be kind"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.ToggleResponse](t, w).Favorite)
	assert.True(t, f.favorites.IsFavorite(t.Context(), "a1"))
}

func TestFavorites_ToggleUnavailable(t *testing.T) {
	f := newFixture(t)
	f.source.EXPECT().QuoteByUUID(mock.Anything, "z9").Return(nil, errAPIDown)

	w := f.do(t, http.MethodPost, "/api/v1/favorites/z9/toggle", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.False(t, f.favorites.IsFavorite(t.Context(), "z9"))
}

func TestCache_Endpoints(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/cache/quotes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())

	w = f.do(t, http.MethodGet, "/api/v1/cache/qotd", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(quote("a1", "Be kind"), nil)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/v1/quotes/today", nil).Code)

	w = f.do(t, http.MethodGet, "/api/v1/cache/qotd", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a1", decode[dto.QuoteResponse](t, w).UUID)

	w = f.do(t, http.MethodGet, "/api/v1/cache/quotes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode[dto.CachedQuotesResponse](t, w).Items
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].UUID)
}

func TestProfile_PatchAndComplete(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/v1/profile", nil).Code)

	w := f.do(t, http.MethodPatch, "/api/v1/profile", map[string]string{"name": "Abebe"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPatch, "/api/v1/profile", map[string]string{"bio": "Reader"})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.ProfileResponse](t, w)
	assert.Equal(t, "Abebe", got.Name)
	assert.Equal(t, "Reader", got.Bio)

	w = f.do(t, http.MethodPost, "/api/v1/profile/complete", map[string]string{"name": "Sara", "theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)
	settings := decode[dto.SettingsResponse](t, w)
	assert.True(t, settings.HasCompletedPersonalize)
	assert.Equal(t, "dark", settings.Theme)

	w = f.do(t, http.MethodGet, "/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got = decode[dto.ProfileResponse](t, w)
	assert.Equal(t, "Sara", got.Name)
	assert.Empty(t, got.Bio)
}

func TestProfile_PatchClearsField(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPatch, "/api/v1/profile", map[string]string{"name": "Liya", "bio": "old bio"})
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPatch, "/api/v1/profile", map[string]string{"bio": ""})
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[dto.ProfileResponse](t, w)
	assert.Empty(t, got.Bio)
	assert.Equal(t, "Liya", got.Name)
}

func TestProfile_RejectsUnknownTheme(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPatch, "/api/v1/profile", map[string]string{"theme": "sepia"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettings(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.SettingsResponse{
		Theme:                "light",
		NotificationsEnabled: true,
		DailyQuoteEnabled:    true,
	}, decode[dto.SettingsResponse](t, w))

	w = f.do(t, http.MethodPut, "/api/v1/settings/theme", dto.ThemeRequest{Theme: "dark"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dark", decode[dto.SettingsResponse](t, w).Theme)

	w = f.do(t, http.MethodPut, "/api/v1/settings/theme", dto.ThemeRequest{Theme: "sepia"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/settings/notifications", map[string]bool{"enabled": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.SettingsResponse](t, w).NotificationsEnabled)

	w = f.do(t, http.MethodPut, "/api/v1/settings/daily-quote", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/settings/daily-quote", map[string]bool{"enabled": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.SettingsResponse](t, w).DailyQuoteEnabled)

	w = f.do(t, http.MethodPost, "/api/v1/settings/onboarding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[dto.SettingsResponse](t, w).HasSeenOnboarding)

	w = f.do(t, http.MethodDelete, "/api/v1/settings/onboarding", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[dto.SettingsResponse](t, w).HasSeenOnboarding)
}

func TestReminder(t *testing.T) {
	t.Run("today's quote", func(t *testing.T) {
		f := newFixture(t)
		f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(quote("a1", "Be kind"), nil)

		w := f.do(t, http.MethodGet, "/api/v1/reminder", nil)

		require.Equal(t, http.StatusOK, w.Code)
		got := decode[dto.ReminderResponse](t, w)
		assert.True(t, got.Enabled)
		assert.Equal(t, "DailyDose Today", got.Title)
		assert.Equal(t, "\"Be kind\"\n Author a1", got.Body)
		assert.Equal(t, 8, got.Hour)
		assert.Equal(t, "daily-quote", got.Data["type"])
	})

	t.Run("fallback when api is down", func(t *testing.T) {
		f := newFixture(t)
		f.source.EXPECT().QuoteOfTheDay(mock.Anything).Return(nil, errAPIDown)

		w := f.do(t, http.MethodGet, "/api/v1/reminder", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "\"Stay positive and keep going!\"\n DailyDose", decode[dto.ReminderResponse](t, w).Body)
	})
}

func TestUUIDParam_TooLong(t *testing.T) {
	f := newFixture(t)

	long := make([]byte, maxUUIDLength+1)
	for i := range long {
		long[i] = 'a'
	}

	w := f.do(t, http.MethodGet, "/api/v1/favorites/"+string(long), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
