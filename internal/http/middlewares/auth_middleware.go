package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hiteshgarg/medium-blog/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyForRequest(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// RequireAuth gates every blog route. The client sends the bare token as the
// Authorization header value, so the whole value goes to verification as-is.
// Any failure is the same fixed 403 the browser client expects.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")

		claims, err := m.jwt.VerifyForRequest(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "You are not logged in",
			})
			return
		}

		// Stash the resolved identity on the context
		c.Set(CtxUserID, claims.UserID)

		c.Next()
	}
}

// Optional helper so handlers don’t need to know the magic key.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
