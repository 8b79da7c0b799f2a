package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HTTPClient calls a remote translation API: a JSON POST with a bearer key.
// The expected response shape is {"translated_text": "...", "detected_language": "..."}.
type HTTPClient struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration

	// HTTP allows tests to inject a client; nil uses one built from Timeout.
	HTTP *http.Client
}

// NewHTTPClient builds a provider client for endpoint.
func NewHTTPClient(endpoint, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{Endpoint: endpoint, APIKey: apiKey, Timeout: timeout}
}

type providerRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type providerResponse struct {
	TranslatedText   string `json:"translated_text"`
	DetectedLanguage string `json:"detected_language"`
}

// Translate implements Translator. All failure modes come back as
// *ProviderError so the poller can log and leave the record pending.
func (c *HTTPClient) Translate(ctx context.Context, text, targetLanguage string) (Result, error) {
	body, err := json.Marshal(providerRequest{Text: text, Target: targetLanguage})
	if err != nil {
		return Result{}, &ProviderError{Reason: "decode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, &ProviderError{Reason: "transport", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.Timeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Result{}, &ProviderError{Reason: "transport", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, &ProviderError{Reason: "status", Status: resp.StatusCode}
	}

	var pr providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Result{}, &ProviderError{Reason: "decode", Err: err}
	}
	if pr.TranslatedText == "" {
		return Result{}, &ProviderError{Reason: "decode"}
	}
	return Result{Text: pr.TranslatedText, Detected: pr.DetectedLanguage}, nil
}
