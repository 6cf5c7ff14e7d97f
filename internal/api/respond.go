package api

import (
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// errorBody is the uniform error envelope: {success:false, error:{code, message}}.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// respondError writes the uniform error envelope and aborts the request.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{
		Success: false,
		Error:   errorBody{Code: status, Message: message},
	})
}

// respondOK writes a success envelope merging the payload under success:true.
func respondOK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// sanitizer strips any markup from user-supplied identifiers before they
// reach a query or a prompt.
var sanitizer = bluemonday.StrictPolicy()

// sanitizeSymbol normalizes a user-supplied element symbol: markup
// stripped, whitespace trimmed, canonical chemical casing (Na, Cl, H).
func sanitizeSymbol(raw string) string {
	cleaned := strings.TrimSpace(sanitizer.Sanitize(raw))
	if cleaned == "" {
		return ""
	}

	runes := []rune(cleaned)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

// sanitizeQuery strips markup from free-text query input.
func sanitizeQuery(raw string) string {
	return strings.TrimSpace(sanitizer.Sanitize(raw))
}
