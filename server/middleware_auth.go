package orderserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-api/internal/platform/auth"
	apierrors "github.com/Apurer/go-gin-order-api/internal/shared/errors"
)

// TokenValidator verifies bearer tokens and returns the embedded claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Caller is the authenticated identity attached to the request context.
type Caller struct {
	ID    int64
	Name  string
	Admin bool
}

const callerContextKey = "orderserver.caller"

// AuthGuard enforces route access levels using bearer tokens.
type AuthGuard struct {
	tokens TokenValidator
}

func NewAuthGuard(tokens TokenValidator) *AuthGuard {
	return &AuthGuard{tokens: tokens}
}

// Authenticate validates the Authorization header and stores the caller.
func (g *AuthGuard) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing bearer token"))
			c.Abort()
			return
		}
		claims, err := g.tokens.Validate(token)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("invalid or expired token"))
			c.Abort()
			return
		}
		c.Set(callerContextKey, Caller{ID: claims.UserID, Name: claims.Name, Admin: claims.Admin})
		c.Next()
	}
}

// RequireAdmin rejects non-admin callers. Must run after Authenticate.
func (g *AuthGuard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok || !caller.Admin {
			respondProblem(c, apierrors.ErrForbidden.WithDetail("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom extracts the authenticated caller from the gin context.
func CallerFrom(c *gin.Context) (Caller, bool) {
	value, exists := c.Get(callerContextKey)
	if !exists {
		return Caller{}, false
	}
	caller, ok := value.(Caller)
	return caller, ok
}
