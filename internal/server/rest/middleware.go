package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/expensetracker/internal/common"
	"github.com/dmitrijs2005/expensetracker/internal/logging"
	"github.com/dmitrijs2005/expensetracker/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const ctxKeyLogger = "logger"

// requestID tags every request with an id, reusing the caller's one if sent.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			var err error
			if id, err = common.MakeRandHexString(8); err != nil {
				id = "unknown"
			}
		}
		c.Header(common.RequestIDHeaderName, id)
		c.Set(ctxKeyLogger, s.logger.With("request_id", id))
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.requestLogger(c).Info(c.Request.Context(), "request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

func (s *Server) requestLogger(c *gin.Context) logging.Logger {
	if l, ok := c.Get(ctxKeyLogger); ok {
		if logger, ok := l.(logging.Logger); ok {
			return logger
		}
	}
	return s.logger
}

// authMiddleware gates protected routes on a valid Bearer token and puts
// the user ID in the request context.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgNoToken})
			return
		}

		userID, err := s.deps.Tokens.Verify(token)
		if err != nil {
			s.requestLogger(c).Debug(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msgTokenFailed})
			return
		}

		c.Request = c.Request.WithContext(auth.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", common.ErrMissingAuthHeader
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrInvalidAuthHeader
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrInvalidAuthHeader
	}
	return token, nil
}

// userID reads the identity placed by authMiddleware.
func userID(c *gin.Context) (string, bool) {
	return auth.UserIDFromContext(c.Request.Context())
}
