package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "5050" {
		t.Errorf("Port = %q, want 5050", cfg.Port)
	}
	if cfg.DBPath != "app.db" {
		t.Errorf("DBPath = %q, want app.db", cfg.DBPath)
	}
	if cfg.DefaultTargetLang != "es" {
		t.Errorf("DefaultTargetLang = %q, want es", cfg.DefaultTargetLang)
	}
	if cfg.Poller.Interval != 5*time.Second {
		t.Errorf("Poller.Interval = %v, want 5s", cfg.Poller.Interval)
	}
	if cfg.Poller.ClaimLease != 2*time.Minute {
		t.Errorf("Poller.ClaimLease = %v, want 2m", cfg.Poller.ClaimLease)
	}
	if cfg.Provider.URL != "" || cfg.Provider.Name != "stub" {
		t.Errorf("Provider defaults wrong: %+v", cfg.Provider)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", cfg.GinMode)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("PROVIDER_URL", "https://translate.example.com/v1")
	t.Setenv("PROVIDER_NAME", "acme")
	t.Setenv("DEFAULT_TARGET_LANG", "fr")
	t.Setenv("LOG_LEVEL", "warning") // normalized alias
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Poller.Interval != 250*time.Millisecond {
		t.Errorf("Poller.Interval = %v", cfg.Poller.Interval)
	}
	if cfg.Provider.URL != "https://translate.example.com/v1" || cfg.Provider.Name != "acme" {
		t.Errorf("Provider = %+v", cfg.Provider)
	}
	if cfg.DefaultTargetLang != "fr" {
		t.Errorf("DefaultTargetLang = %q", cfg.DefaultTargetLang)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("CORS origins = %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct{ key, val string }{
		{"LOG_LEVEL", "verbose"},
		{"POLL_INTERVAL", "-1s"},
		{"CLAIM_LEASE", "-5m"},
		{"SESSION_TTL", "-1h"},
		{"RATE_BURST", "0"},
		{"PROVIDER_TIMEOUT", "-1s"},
		{"OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_BadGinModeFallsBack(t *testing.T) {
	t.Setenv("GIN_MODE", "prod")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", cfg.GinMode)
	}
}

func TestHelpers(t *testing.T) {
	t.Setenv("X_BOOL", "yes")
	if !getbool("X_BOOL", false) {
		t.Errorf("getbool yes -> true")
	}
	t.Setenv("X_BOOL", "off")
	if getbool("X_BOOL", true) {
		t.Errorf("getbool off -> false")
	}
	if getdur("X_MISSING", time.Minute) != time.Minute {
		t.Errorf("getdur default")
	}
	if got := splitCSV(" a ,, b "); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitCSV = %v", got)
	}
}
