package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"explore-with-me/internal/apperr"
	"explore-with-me/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError translates a service error into the API error body:
// {status, reason, message, timestamp}.
func respondError(c *gin.Context, err error) {
	var httpStatus int
	var status, reason string

	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		httpStatus = http.StatusNotFound
		status = "NOT_FOUND"
		reason = "The required object was not found."
	case apperr.KindConflict:
		httpStatus = http.StatusConflict
		status = "CONFLICT"
		reason = "Integrity constraint has been violated."
	case apperr.KindForbidden:
		httpStatus = http.StatusForbidden
		status = "FORBIDDEN"
		reason = "For the requested operation the conditions are not met."
	case apperr.KindValidation:
		httpStatus = http.StatusBadRequest
		status = "BAD_REQUEST"
		reason = "Incorrectly made request."
	default:
		httpStatus = http.StatusInternalServerError
		status = "INTERNAL_SERVER_ERROR"
		reason = "An unexpected error occurred."
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"reason":    reason,
		"message":   err.Error(),
		"timestamp": time.Now().Format(stats.DateTimeLayout),
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":    "BAD_REQUEST",
		"reason":    "Incorrectly made request.",
		"message":   message,
		"timestamp": time.Now().Format(stats.DateTimeLayout),
	})
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	value, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return value, true
}

// parsePaging reads from/size query params with the usual defaults.
func parsePaging(c *gin.Context) (int, int) {
	from := 0
	size := 10

	if fromStr := c.Query("from"); fromStr != "" {
		if f, err := strconv.Atoi(fromStr); err == nil && f >= 0 {
			from = f
		}
	}
	if sizeStr := c.Query("size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 1000 {
			size = s
		}
	}
	return from, size
}

func parseUintList(value string) []uint {
	if value == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(value, ",") {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

func parseStringList(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

func parseDateTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(stats.DateTimeLayout, value)
	if err != nil {
		return nil
	}
	return &t
}
