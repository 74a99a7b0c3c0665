package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emre/inkwell/internal/app/models/dto"
	"github.com/emre/inkwell/internal/pkg/auth"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	ContextUserIDKey   = "userID"
	ContextUsernameKey = "username"
)

// LoginPath is the address unauthenticated browser-style requests are
// redirected to, carrying the original URL in the next parameter.
const LoginPath = "/api/v1/auth/login"

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the bearer token and populates the user identity in the
// request context. Requests without a usable token are not rejected with a
// bare 401: browser-style clients (anything accepting text/html) are
// redirected to the login endpoint with the original URL preserved, API
// clients get a 401 envelope.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.rejectUnauthenticated(c, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			m.rejectUnauthenticated(c, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				m.rejectUnauthenticated(c, "Token has expired")
				return
			}
			m.rejectUnauthenticated(c, "Invalid token")
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)

		c.Next()
	}
}

// OptionalJWTAuth populates the user identity when a valid token is present
// and stays silent otherwise. Used on public pages that render differently
// for signed-in viewers, like profiles with their follow state.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.Next()
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)

		c.Next()
	}
}

func (m *AuthMiddleware) rejectUnauthenticated(c *gin.Context, details string) {
	if acceptsHTML(c) {
		c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}

	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	errorDetail = errorDetail.WithDetails(details)

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

func acceptsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// GetUserID extracts the authenticated user id from the request context
func GetUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// GetOptionalUserID returns a pointer to the authenticated user id, nil for
// anonymous requests
func GetOptionalUserID(c *gin.Context) *int64 {
	userID, ok := GetUserID(c)
	if !ok {
		return nil
	}
	return &userID
}
