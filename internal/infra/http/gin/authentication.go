package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"revu/internal/infra/security"
)

const principalContextKey = "revu.principal"

// principal is the authenticated caller. The user id comes from the external
// identity provider's token and is trusted as-is.
type principal struct {
	UserID string
}

type AuthMiddleware struct {
	Verifier security.TokenVerifier
	Logger   *slog.Logger
}

// Handle resolves an optional bearer token into a principal. Requests
// without a valid token continue anonymously; write endpoints decide whether
// a principal is required.
func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || !m.Verifier.Enabled() {
		c.Next()
		return
	}
	userID, err := m.Verifier.Verify(token)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	c.Set(principalContextKey, principal{UserID: userID})
	c.Next()
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireUser(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
