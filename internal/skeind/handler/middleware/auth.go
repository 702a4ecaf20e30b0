package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthConfig holds configuration for Bearer token authentication.
type AuthConfig struct {
	// Enabled controls whether authentication is enforced.
	Enabled bool `json:"enabled"`

	// Token is the expected Bearer token value.
	// Can also be set via SKEIN_GATEWAY_TOKEN environment variable.
	Token string `json:"token"`
}

// ResolveToken returns the effective token, checking env vars as fallback.
func (c *AuthConfig) ResolveToken() string {
	if c.Token != "" {
		return c.Token
	}
	return os.Getenv("SKEIN_GATEWAY_TOKEN")
}

// BearerAuth returns a Gin middleware that enforces Bearer token
// authentication. Uses constant-time comparison, skips loopback requests,
// and whitelists /healthz and /version.
func BearerAuth(cfg *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		token := cfg.ResolveToken()
		if token == "" {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if path == "/healthz" || path == "/version" {
			c.Next()
			return
		}

		if isLocalRequest(c.Request) {
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// isLocalRequest reports whether the request came from a loopback address
// without passing through a proxy.
func isLocalRequest(r *http.Request) bool {
	if r.Header.Get("X-Forwarded-For") != "" {
		return false
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
