// Page HTTP handlers.
//
// This file renders the HTML pages of the app. Public pages (landing, login,
// register) render for everyone; /translator, /home, and /account sit behind
// the session gate installed by the router. Handlers stay thin: look up what
// the template needs, render, done.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voxlate/go-translate-backend/internal/http/middleware"
	"github.com/voxlate/go-translate-backend/internal/repo"
)

// Index handles GET /: the public landing page.
func (h *Handlers) Index(c *gin.Context) {
	h.render(c, "index.html", gin.H{})
}

// LoginPage handles GET /login. An already-authenticated visitor is sent
// straight to the translator.
func (h *Handlers) LoginPage(c *gin.Context) {
	if _, ok := middleware.SessionUserID(c); ok {
		c.Redirect(http.StatusFound, "/translator")
		return
	}
	h.render(c, "login.html", gin.H{})
}

// RegisterPage handles GET /register.
func (h *Handlers) RegisterPage(c *gin.Context) {
	if _, ok := middleware.SessionUserID(c); ok {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	h.render(c, "register.html", gin.H{})
}

// TranslatorPage handles GET /translator (session required).
func (h *Handlers) TranslatorPage(c *gin.Context) {
	h.render(c, "translator.html", gin.H{})
}

// HomePage handles GET /home (session required).
func (h *Handlers) HomePage(c *gin.Context) {
	h.render(c, "home.html", gin.H{})
}

// AccountPage handles GET /account (session required): shows the profile of
// the logged-in user. A stale session whose user no longer exists is treated
// as logged out.
func (h *Handlers) AccountPage(c *gin.Context) {
	uid, _ := middleware.SessionUserID(c)

	u, err := repo.GetUser(c.Request.Context(), h.db, uid)
	if errors.Is(err, repo.ErrNotFound) {
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	h.render(c, "account.html", gin.H{
		"FirstName": u.FirstName,
		"LastName":  u.LastName,
		"Email":     u.Email,
	})
}

// render emits an HTML template, or a plain 200 when the engine has no
// templates loaded (router tests run without the web/ directory).
func (h *Handlers) render(c *gin.Context, name string, data gin.H) {
	if !h.templates {
		c.String(http.StatusOK, name)
		return
	}
	c.HTML(http.StatusOK, name, data)
}
