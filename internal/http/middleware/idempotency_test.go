package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func idemRouter(lookup IdempotencyLookup) *gin.Engine {
	r := gin.New()
	r.Use(IdempotencyValidator(IdempotencyOptions{}, lookup))
	r.POST("/submit", func(c *gin.Context) {
		key, _ := GetIdempotencyKey(c)
		c.JSON(http.StatusOK, gin.H{
			"key":    key,
			"replay": IsReplay(c),
			"bypass": IsRateBypass(c),
		})
	})
	return r
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	r := idemRouter(nil)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestIdempotency_InvalidKeyRejected(t *testing.T) {
	r := idemRouter(nil)

	for _, key := range []string{"spaces not allowed", "emoji😀", string(make([]byte, 300))} {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set(HeaderIdempotencyKey, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("key %q: status %d, want 400", key, w.Code)
		}
	}
}

func TestIdempotency_ReplayMarksContext(t *testing.T) {
	lookup := func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
		return key == "seen-before", nil
	}
	r := idemRouter(lookup)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(HeaderIdempotencyKey, "seen-before")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{`"replay":true`, `"bypass":true`, `"key":"seen-before"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body %q missing %q", body, want)
		}
	}
}

func TestIdempotency_FreshKeyNotReplay(t *testing.T) {
	lookup := func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
		return false, nil
	}
	r := idemRouter(lookup)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set(HeaderIdempotencyKey, "fresh-key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `"replay":false`) {
		t.Fatalf("fresh key flagged as replay: %s", w.Body.String())
	}
}
