package access

import (
	"net/http"

	"fitnessmanager/internal/api"
	"fitnessmanager/internal/auth"
	"fitnessmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

const callerKey = "access_caller"

// Middleware resolves the caller's group memberships once per request. It
// must run after auth.Middleware.
func Middleware(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
			return
		}

		groups, err := repo.GroupsForCustomer(c.Request.Context(), id.CustomerID)
		if err != nil {
			logger.Error("failed to load caller groups", "customer_id", id.CustomerID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
			return
		}

		WithCaller(c, Caller{
			CustomerID: id.CustomerID,
			Role:       id.Role,
			Groups:     groups,
		})
		c.Next()
	}
}

// CallerFrom returns the caller stored by Middleware.
func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}

// WithCaller stores caller on c.
func WithCaller(c *gin.Context, caller Caller) {
	c.Set(callerKey, caller)
}

// MustCaller is CallerFrom for handlers; it writes a 401 when the caller
// middleware did not run.
func MustCaller(c *gin.Context) (Caller, bool) {
	caller, ok := CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
	}
	return caller, ok
}
