package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dailydose/dailydose/internal/adapters/http/dto"
)

const maxUUIDLength = 128

// uuidParam reads the :uuid path parameter. On failure it writes a 400
// and returns false.
func uuidParam(c *gin.Context) (string, bool) {
	uuid := strings.TrimSpace(c.Param("uuid"))
	if uuid == "" || len(uuid) > maxUUIDLength {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, "invalid quote uuid")
		return "", false
	}

	return uuid, true
}

// hasBody reports whether the request carries a body to bind.
func hasBody(c *gin.Context) bool {
	return c.Request.ContentLength > 0 || len(c.Request.TransferEncoding) > 0
}
