package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"widviz/common"
)

func respondOK(c *gin.Context, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondError logs err with the request ID and sends the caller-safe
// message for its kind.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	slog.Error("request error",
		"request_id", c.GetString(requestIDKey),
		"path", c.FullPath(),
		"status", status,
		"error", err)
	respondFail(c, status, common.UserMessage(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidVideoReference):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrServiceUnavailable), errors.Is(err, common.ErrToolMissing):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrDownloadTimeout), errors.Is(err, common.ErrGenerationTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, common.ErrDownloadFailed),
		errors.Is(err, common.ErrOutputMissing),
		errors.Is(err, common.ErrTranscriptionFailed),
		errors.Is(err, common.ErrGenerationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes the request body, answering 400 itself on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondFail(c, http.StatusBadRequest, "Invalid JSON payload.")
		return false
	}
	return true
}
