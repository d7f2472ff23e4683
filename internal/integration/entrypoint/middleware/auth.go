// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/financaspro/backend/internal/application/adapter"
	domainerror "github.com/financaspro/backend/internal/domain/error"
	"github.com/financaspro/backend/internal/integration/entrypoint/dto"
)

// sessionKey is the gin context key holding the verified session.
const sessionKey = "session"

// AuthMiddleware verifies session tokens at the API boundary. Handlers
// downstream only ever see the typed adapter.Session; raw tokens never
// travel past this point.
type AuthMiddleware struct {
	sessionService adapter.SessionService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(sessionService adapter.SessionService) *AuthMiddleware {
	return &AuthMiddleware{
		sessionService: sessionService,
	}
}

// Authenticate returns a Gin middleware handler that enforces session authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		session, err := m.sessionService.Verify(c.Request.Context(), token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			if errors.Is(err, domainerror.ErrExpiredToken) {
				code = domainerror.ErrCodeExpiredToken
			}
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired session token",
				Code:  string(code),
			})
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// GetSessionFromContext extracts the verified session from the Gin context.
func GetSessionFromContext(c *gin.Context) (*adapter.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*adapter.Session)
	return session, ok
}
