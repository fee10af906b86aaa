package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/domain"
)

// FavoritesHandler serves the favorites store.
type FavoritesHandler struct {
	store  *app.FavoritesStore
	quotes *app.QuoteService
}

// NewFavoritesHandler creates a favorites handler. quotes is used to fetch
// a quote that is toggled on without a body.
func NewFavoritesHandler(store *app.FavoritesStore, quotes *app.QuoteService) *FavoritesHandler {
	return &FavoritesHandler{store: store, quotes: quotes}
}

// List handles GET /favorites?cursor=&limit=. Favorites are ordered by uuid.
func (h *FavoritesHandler) List(c *gin.Context) {
	var page dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	after, err := page.After()
	if err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	limit := page.GetLimit()
	items := h.store.ListFavorites(c.Request.Context(), after, limit+1)

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromQuotes(items), limit,
		func(q dto.QuoteResponse) string { return q.UUID }))
}

// Get handles GET /favorites/:uuid.
func (h *FavoritesHandler) Get(c *gin.Context) {
	uuid, ok := uuidParam(c)
	if !ok {
		return
	}

	q, err := h.store.Favorite(c.Request.Context(), uuid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(q))
}

// Put handles PUT /favorites/:uuid. It answers 201 when the quote was not
// a favorite before and 200 when it already was; the stored copy is kept.
func (h *FavoritesHandler) Put(c *gin.Context) {
	uuid, ok := uuidParam(c)
	if !ok {
		return
	}

	var req dto.QuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	q, err := req.ToDomain(uuid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	ctx := c.Request.Context()

	inserted, err := h.store.InsertFavorite(ctx, q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if inserted {
		c.JSON(http.StatusCreated, dto.FromQuote(&q))
		return
	}

	stored, err := h.store.Favorite(ctx, uuid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(stored))
}

// Delete handles DELETE /favorites/:uuid. Removing an absent favorite
// succeeds.
func (h *FavoritesHandler) Delete(c *gin.Context) {
	uuid, ok := uuidParam(c)
	if !ok {
		return
	}

	if err := h.store.RemoveFavorite(c.Request.Context(), uuid); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Toggle handles POST /favorites/:uuid/toggle. The body, when present, is
// the quote to add; without one the quote is fetched from the API.
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	uuid, ok := uuidParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	q, ok := h.toggleTarget(c, uuid)
	if !ok {
		return
	}

	now, err := h.store.ToggleFavorite(ctx, q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToggleResponse{UUID: uuid, Favorite: now})
}

func (h *FavoritesHandler) toggleTarget(c *gin.Context, uuid string) (domain.Quote, bool) {
	ctx := c.Request.Context()

	if hasBody(c) {
		var req dto.QuoteRequest
		if err := dto.BindAndValidate(c, &req); err != nil {
			dto.RespondWithBindError(c, err)
			return domain.Quote{}, false
		}

		q, err := req.ToDomain(uuid)
		if err != nil {
			dto.HandleError(c, err)
			return domain.Quote{}, false
		}

		return q, true
	}

	if stored, err := h.store.Favorite(ctx, uuid); err == nil {
		return *stored, true
	}

	fetched, err := h.quotes.QuoteByUUID(ctx, uuid)
	if err != nil {
		dto.HandleError(c, err)
		return domain.Quote{}, false
	}

	if fetched.UUID == "" {
		fetched.UUID = uuid
	}

	return *fetched, true
}

// RegisterRoutes mounts the favorites routes on rg.
func (h *FavoritesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/favorites")
	favorites.GET("", h.List)
	favorites.GET("/:uuid", h.Get)
	favorites.PUT("/:uuid", h.Put)
	favorites.DELETE("/:uuid", h.Delete)
	favorites.POST("/:uuid/toggle", h.Toggle)
}
