package accounts

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxClaimsKey = "account_claims"

// SessionCookie is the cookie the web pages carry the signed token in.
const SessionCookie = "moviehub_token"

// APIAuth guards JSON endpoints with a bearer token. A token is only good
// while the persisted session still belongs to the same account, so logout
// revokes every previously issued token.
func APIAuth(tokens TokenService, store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			c.Abort()
			return
		}

		raw := strings.TrimSpace(h[len("Bearer "):])
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		if !sessionMatches(c, store, claims) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// PageAuth guards HTML pages with the session cookie and redirects to the
// login page instead of answering JSON.
func PageAuth(tokens TokenService, store *Store, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil || !sessionMatches(c, store, claims) {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// RedirectIfAuthenticated sends logged-in visitors of the login and register
// pages straight to the dashboard.
func RedirectIfAuthenticated(tokens TokenService, store *Store, dashboardPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(raw)
		if err == nil && sessionMatches(c, store, claims) {
			c.Redirect(http.StatusSeeOther, dashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionMatches(c *gin.Context, store *Store, claims *Claims) bool {
	if store == nil {
		return true
	}
	session, err := store.Current(c.Request.Context())
	if err != nil || session == nil {
		return false
	}
	return session.AccountID == claims.AccountID
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
