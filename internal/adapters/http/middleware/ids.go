// Package middleware contains the gin middleware chain of the HTTP API.
package middleware

import (
	"context"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dailydose/dailydose/internal/platform/logging"
)

// Header and gin context keys of the propagated IDs.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"

	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength caps caller-supplied IDs so they cannot bloat every log line.
const maxIDLength = 128

type idKind struct {
	header  string
	ginKey  string
	store   func(context.Context, string) context.Context
	logAttr func(context.Context, string) context.Context
}

// RequestID takes X-Request-ID from the request or generates a UUID. The
// ID is echoed in the response, stored on the gin context and the request
// context, and added to the context logger.
func RequestID() gin.HandlerFunc {
	return propagateID(idKind{
		header:  HeaderRequestID,
		ginKey:  ContextKeyRequestID,
		store:   ContextWithRequestID,
		logAttr: logging.WithRequestID,
	})
}

// CorrelationID does the same for X-Correlation-ID, which spans every
// request of one client action. The quote API client forwards both.
func CorrelationID() gin.HandlerFunc {
	return propagateID(idKind{
		header:  HeaderCorrelationID,
		ginKey:  ContextKeyCorrelationID,
		store:   ContextWithCorrelationID,
		logAttr: logging.WithCorrelationID,
	})
}

func propagateID(k idKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(k.header)
		if !validID(id) {
			id = uuid.NewString()
		}

		c.Set(k.ginKey, id)
		c.Header(k.header, id)

		ctx := k.store(c.Request.Context(), id)
		ctx = k.logAttr(ctx, id)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for _, r := range id {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return false
		}
	}

	return true
}

// GetRequestID returns the request ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
