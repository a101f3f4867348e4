package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nareshkanna-nk/Young-wealth/internal/application"
	"github.com/nareshkanna-nk/Young-wealth/pkg/response"
)

const CtxAdminIDKey = "adminID"

// AdminBasicAuth requires HTTP Basic credentials of an active admin user.
// Bad or missing credentials get 401, a valid non-admin account gets 403.
func AdminBasicAuth(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.Abort(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		u, err := auth.Authorize(c.Request.Context(), email, password)
		switch {
		case errors.Is(err, application.ErrNotAdmin):
			response.Abort(c, http.StatusForbidden, "Admin access required", nil)
			return
		case err != nil:
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.Abort(c, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		c.Set(CtxAdminIDKey, u.ID)
		c.Next()
	}
}
