// README: Base handler utilities (JSON helpers, error envelope, boundary handlers).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// errorResponse is the envelope shared by every failure path.
type errorResponse struct {
	Error      bool   `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: true, Message: msg, StatusCode: status})
}

// isJSONContentType accepts application/json and structured-suffix types
// such as application/problem+json. Parameters are already stripped by gin.
func isJSONContentType(ct string) bool {
	ct = strings.ToLower(ct)
	if ct == "application/json" {
		return true
	}
	return strings.HasPrefix(ct, "application/") && strings.HasSuffix(ct, "+json")
}

// NotFound handles unknown routes.
func NotFound(c *gin.Context) {
	writeError(c, http.StatusNotFound, "Endpoint not found. Use POST /api/plan-trip")
}

// MethodNotAllowed handles known routes hit with the wrong verb.
func MethodNotAllowed(c *gin.Context) {
	writeError(c, http.StatusMethodNotAllowed, "Method not allowed. Use POST request.")
}
