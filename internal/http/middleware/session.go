// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements cookie-based session handling. The session cookie
// carries a signed token; Session() resolves it to a user id for every
// request, and RequireSession() gates page routes, redirecting anonymous
// visitors to the login page.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie holding the signed session token.
const SessionCookie = "session"

// TokenVerifier resolves a session token to a user id. Implemented by the
// auth service.
type TokenVerifier func(token string) (userID string, err error)

// Session resolves the session cookie (when present and valid) into the
// "userID" context key consumed by logging, rate limiting, and handlers.
// Invalid or missing cookies are not an error: the request simply proceeds
// unauthenticated.
func Session(verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			if uid, err := verify(token); err == nil {
				c.Set("userID", uid)
			}
		}
		c.Next()
	}
}

// RequireSession gates a route on an authenticated session. Browser-facing
// routes redirect 302 to /login; install after Session().
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get("userID"); ok {
			if s, ok := v.(string); ok && s != "" {
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// SessionUserID returns the authenticated user id from the Gin context, or
// ("", false) when the request is anonymous.
func SessionUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}
