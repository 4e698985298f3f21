package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/gin-gonic/gin"
)

const (
	msgNoToken     = "Not authorized, no token"
	msgTokenFailed = "Not authorized, token failed"
	msgServerError = "Server Error"
)

// respondWithError is the only place service errors become HTTP statuses.
// Unexpected errors are logged and never echoed back.
func (s *Server) respondWithError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, msgServerError

	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, detail(err, common.ErrorValidation)
	case errors.Is(err, common.ErrorAlreadyExists):
		status, msg = http.StatusBadRequest, "Email already in use"
	case errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrorNoFile):
		status, msg = http.StatusBadRequest, "No file uploaded"
	case errors.Is(err, common.ErrorUnsupportedMedia):
		status, msg = http.StatusBadRequest, "Only .jpeg and .png images are allowed"
	case errors.Is(err, common.ErrorFileTooLarge):
		status, msg = http.StatusBadRequest, "File is too large"
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		status, msg = http.StatusUnauthorized, msgTokenFailed
	default:
		s.requestLogger(c).Error(c.Request.Context(), "request failed", "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// detail strips the sentinel prefix from a wrapped validation error.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
