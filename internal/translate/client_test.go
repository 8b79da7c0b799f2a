package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClient_Success(t *testing.T) {
	var gotAuth string
	var gotBody providerRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"translated_text":   "hola mundo",
			"detected_language": "en",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "test-key", 5*time.Second)
	res, err := c.Translate(context.Background(), "hello world", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Text != "hola mundo" || res.Detected != "en" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("missing bearer auth, got %q", gotAuth)
	}
	if gotBody.Text != "hello world" || gotBody.Target != "es" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
}

func TestHTTPClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 5*time.Second)
	_, err := c.Translate(context.Background(), "hello", "es")

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if pe.Reason != "status" || pe.Status != http.StatusBadGateway {
		t.Fatalf("unexpected provider error: %+v", pe)
	}
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 5*time.Second)
	_, err := c.Translate(context.Background(), "hello", "es")

	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Reason != "decode" {
		t.Fatalf("expected decode ProviderError, got %v", err)
	}
}

func TestHTTPClient_EmptyTranslation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"translated_text": ""})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "", 5*time.Second)
	_, err := c.Translate(context.Background(), "hello", "es")

	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Reason != "decode" {
		t.Fatalf("expected decode ProviderError for empty text, got %v", err)
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewHTTPClient(srv.URL, "", time.Second)
	_, err := c.Translate(context.Background(), "hello", "es")

	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Reason != "transport" {
		t.Fatalf("expected transport ProviderError, got %v", err)
	}
}

func TestStatic_PrefixesInput(t *testing.T) {
	s := &Static{}
	res, err := s.Translate(context.Background(), "Hello", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Text != "translated_Hello" {
		t.Fatalf("got %q, want translated_Hello", res.Text)
	}

	s = &Static{Prefix: "x_"}
	res, _ = s.Translate(context.Background(), "Hello", "es")
	if res.Text != "x_Hello" {
		t.Fatalf("custom prefix: got %q", res.Text)
	}
}
