// Auth HTTP handlers.
//
// This file exposes the session lifecycle endpoints:
//   - POST /register  (create account, start session)
//   - POST /login     (exchange credentials for a session cookie)
//   - GET  /logout    (clear the session)
//
// These are browser-facing form endpoints: outcomes are communicated as
// redirects, matching the page flow, not as JSON envelopes.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voxlate/go-translate-backend/internal/domain"
	"github.com/voxlate/go-translate-backend/internal/http/middleware"
	"github.com/voxlate/go-translate-backend/internal/services"
)

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation and timeouts.
type AuthService interface {
	// Register creates an account from the registration form.
	Register(ctx context.Context, p services.RegisterParams) (*domain.User, error)
	// Login exchanges credentials for a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// sessionMaxAge is the lifetime of the session cookie in seconds.
const sessionMaxAge = 24 * 60 * 60

// Register handles POST /register. Validation failures and duplicate emails
// redirect back to the registration page; success starts a session and
// redirects to /home.
func (h *Handlers) Register(c *gin.Context) {
	p := services.RegisterParams{
		FirstName:       strings.TrimSpace(c.PostForm("first_name")),
		LastName:        strings.TrimSpace(c.PostForm("last_name")),
		Email:           c.PostForm("email"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
	}

	user, err := h.authSvc.Register(c.Request.Context(), p)
	switch {
	case err == nil:
		// fall through to session start
	case errors.Is(err, services.ErrPasswordMismatch):
		redirectWithFlash(c, "/register", "passwords do not match")
		return
	case errors.Is(err, services.ErrEmailTaken):
		redirectWithFlash(c, "/register", "email is already registered")
		return
	case errors.Is(err, services.ErrValidation):
		redirectWithFlash(c, "/register", "all fields are required")
		return
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	token, _, err := h.authSvc.Login(c.Request.Context(), p.Email, p.Password)
	if err != nil {
		// Account exists but the session could not start; let them log in.
		c.Redirect(http.StatusFound, "/login")
		return
	}
	setSessionCookie(c, token)

	middleware.LoggerFrom(c).Info().Str("user_id", user.ID).Msg("user registered")
	c.Redirect(http.StatusFound, "/home")
}

// Login handles POST /login. Bad credentials redirect back to the login
// page; success sets the session cookie and redirects to the translator.
func (h *Handlers) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	token, _, err := h.authSvc.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			redirectWithFlash(c, "/login", "invalid email or password")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	setSessionCookie(c, token)
	c.Redirect(http.StatusFound, "/translator")
}

// Logout handles GET /logout: clears the session cookie and redirects home.
func (h *Handlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// setSessionCookie installs the signed session token as an HttpOnly cookie.
func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", false, true)
}

// redirectWithFlash bounces back to a form page with a short-lived cookie
// holding the failure reason; the page scripts display and clear it.
func redirectWithFlash(c *gin.Context, location, msg string) {
	c.SetCookie("flash", msg, 60, "/", "", false, false)
	c.Redirect(http.StatusFound, location)
}
