package auth

import (
	"errors"
	"net/http"
	"strings"

	"fitnessmanager/internal/api"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth_identity"

// Middleware requires a valid bearer access token and stores its Identity
// on the context.
func Middleware(issuer *Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		switch {
		case scheme == "":
			abort(c, http.StatusUnauthorized, "Authorization header required")
			return
		case !found || scheme != "Bearer":
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		token = strings.TrimSpace(token)
		if token == "" {
			abort(c, http.StatusUnauthorized, "Token is empty")
			return
		}

		claims, err := issuer.ParseAccess(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				abort(c, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, ErrInvalidTokenType):
				abort(c, http.StatusUnauthorized, "Access token required")
			default:
				abort(c, http.StatusUnauthorized, "Invalid or malformed token")
			}
			return
		}

		SetIdentity(c, claims.Identity())
		c.Next()
	}
}

// RequireRole lets the request through when the caller holds one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, "Insufficient permissions")
	}
}

func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, api.ErrorResponse{Error: message})
}
