package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aalokdeep/workbench-api/internal/httpapi"
	"github.com/aalokdeep/workbench-api/pkg/logger"
)

// RequireAdmin returns a gin middleware that rejects requests without a valid
// admin principal. It short-circuits before any store access.
func RequireAdmin(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := a.Authorize(c.Request)
		if !res.Authorized {
			logger.Warnf("unauthorized %s %s: %s", c.Request.Method, c.Request.URL.Path, res.Error)
			httpapi.Error(c, "UNAUTHORIZED", res.Error, http.StatusUnauthorized)
			return
		}
		c.Set("adminUser", res.User)
		c.Next()
	}
}
