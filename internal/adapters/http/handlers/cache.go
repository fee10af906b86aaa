package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
	"github.com/dailydose/dailydose/internal/app"
	"github.com/dailydose/dailydose/internal/domain"
)

// CacheHandler exposes the offline caches read-only.
type CacheHandler struct {
	cache *app.QuoteCache
}

// NewCacheHandler creates a cache handler.
func NewCacheHandler(cache *app.QuoteCache) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Quotes handles GET /cache/quotes. An empty or unreadable cache is an
// empty list.
func (h *CacheHandler) Quotes(c *gin.Context) {
	quotes, _ := h.cache.GetCachedQuotes(c.Request.Context())
	c.JSON(http.StatusOK, dto.CachedQuotesResponse{Items: dto.FromQuotes(quotes)})
}

// QOTD handles GET /cache/qotd. Only a quote cached today is returned.
func (h *CacheHandler) QOTD(c *gin.Context) {
	q, ok := h.cache.GetCachedQOTD(c.Request.Context())
	if !ok {
		dto.HandleError(c, domain.NewNotFoundError("cached quote of the day", ""))
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(q))
}

// RegisterRoutes mounts the cache routes on rg.
func (h *CacheHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cache := rg.Group("/cache")
	cache.GET("/quotes", h.Quotes)
	cache.GET("/qotd", h.QOTD)
}
