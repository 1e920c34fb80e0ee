package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"social-service/internal/service"
	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultPageSize = 20

// pageParams reads the cursor pagination query params: `before` as a unix
// timestamp (defaults to now) and `limit`.
func pageParams(c *gin.Context) (time.Time, int) {
	before := time.Now().Add(time.Second)
	if b := c.Query("before"); b != "" {
		if parsed, err := strconv.ParseInt(b, 10, 64); err == nil {
			before = time.Unix(parsed, 0)
		}
	}

	limit := defaultPageSize
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return before, limit
}

// writeError renders the standard error envelope.
func writeError(c *gin.Context, httpStatus, code int, detail string) {
	if detail == "" {
		detail = response.Message(code)
	}
	c.JSON(httpStatus, gin.H{"code": code, "error": detail})
}

// writeServiceError maps service and repository errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(c, http.StatusNotFound, response.CodeNotFound, "")
	case errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotSender),
		errors.Is(err, service.ErrNotNotificationOwner),
		errors.Is(err, service.ErrNotFollowee):
		writeError(c, http.StatusForbidden, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyLiked):
		writeError(c, http.StatusBadRequest, response.CodeParamInvalid, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, response.CodeInternal, "")
	}
}
