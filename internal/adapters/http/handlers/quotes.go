package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/domain"
)

// QuoteHandler serves quotes fetched from the quote API.
type QuoteHandler struct {
	quotes    *app.QuoteService
	favorites *app.FavoritesStore
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(quotes *app.QuoteService, favorites *app.FavoritesStore) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, favorites: favorites}
}

func (h *QuoteHandler) respond(c *gin.Context, q *domain.Quote) {
	fav := h.favorites.IsFavorite(c.Request.Context(), q.UUID)
	c.JSON(http.StatusOK, dto.FromQuote(q).WithFavorite(fav))
}

// Today handles GET /quotes/today. A cached copy is served when the API
// is down.
func (h *QuoteHandler) Today(c *gin.Context) {
	q, err := h.quotes.QuoteOfTheDay(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, q)
}

// Random handles GET /quotes/random?category=.
func (h *QuoteHandler) Random(c *gin.Context) {
	var query dto.CategoryQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	q, err := h.quotes.RandomQuote(c.Request.Context(), query.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, q)
}

// ByUUID handles GET /quotes/:uuid.
func (h *QuoteHandler) ByUUID(c *gin.Context) {
	uuid, ok := uuidParam(c)
	if !ok {
		return
	}

	q, err := h.quotes.QuoteByUUID(c.Request.Context(), uuid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, q)
}

// ByLegacyID handles GET /quotes/id/:id for favorites saved before quotes
// carried a uuid.
func (h *QuoteHandler) ByLegacyID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, "invalid quote id")
		return
	}

	q, err := h.quotes.QuoteByLegacyID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	h.respond(c, q)
}

// Categories handles GET /categories.
func (h *QuoteHandler) Categories(c *gin.Context) {
	categories, err := h.quotes.Categories(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCategories(categories))
}

// Home handles GET /home?category=: today's quote and a random one, each
// marked with its favorites state.
func (h *QuoteHandler) Home(c *gin.Context) {
	var query dto.CategoryQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	feed, err := h.quotes.Home(c.Request.Context(), query.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	view := func(v *app.QuoteView) *dto.QuoteResponse {
		if v == nil {
			return nil
		}
		return dto.FromQuote(v.Quote).WithFavorite(v.Favorite)
	}

	c.JSON(http.StatusOK, dto.HomeResponse{
		Today:  view(feed.Today),
		Random: view(feed.Random),
	})
}

// RegisterRoutes mounts the quote routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("/today", h.Today)
	quotes.GET("/random", h.Random)
	quotes.GET("/id/:id", h.ByLegacyID)
	quotes.GET("/:uuid", h.ByUUID)

	rg.GET("/categories", h.Categories)
	rg.GET("/home", h.Home)
}
