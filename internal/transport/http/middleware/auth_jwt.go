package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-todo-api/internal/core/auth"
	"go-todo-api/internal/domain"
	resp "go-todo-api/internal/transport/http/response"
)

const keyPrincipal = "principal"

// AuthJWT resolves the calling principal from the bearer token. With a
// non-empty requireRole the whole group is restricted to that role.
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.ErrMsg(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.ErrMsg(c, http.StatusUnauthorized, "invalid token")
			return
		}
		p := claims.Principal()
		if requireRole != "" && !p.HasRole(requireRole) {
			resp.ErrMsg(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(keyPrincipal, p)
		c.Next()
	}
}

// PrincipalFrom returns the identity set by AuthJWT.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(keyPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// SetPrincipal exists for handler tests that bypass token parsing.
func SetPrincipal(c *gin.Context, p domain.Principal) { c.Set(keyPrincipal, p) }
