package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func sessionRouter(verify TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(Session(verify))
	r.GET("/open", func(c *gin.Context) {
		uid, _ := SessionUserID(c)
		c.String(http.StatusOK, uid)
	})
	r.GET("/gated", RequireSession(), func(c *gin.Context) {
		c.String(http.StatusOK, "in")
	})
	return r
}

func okVerifier(token string) (string, error) {
	if token == "valid" {
		return "user-1", nil
	}
	return "", errors.New("bad token")
}

func TestSession_ValidCookieSetsUser(t *testing.T) {
	r := sessionRouter(okVerifier)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "valid"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "user-1" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestSession_InvalidCookieIsAnonymous(t *testing.T) {
	r := sessionRouter(okVerifier)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "" {
		t.Fatalf("invalid cookie should be anonymous, got %d %q", w.Code, w.Body.String())
	}
}

func TestRequireSession_RedirectsAnonymousToLogin(t *testing.T) {
	r := sessionRouter(okVerifier)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("Location %q, want /login", loc)
	}
}

func TestRequireSession_PassesAuthenticated(t *testing.T) {
	r := sessionRouter(okVerifier)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "valid"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "in" {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}
