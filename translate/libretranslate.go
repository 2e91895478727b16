// CLAUDE:SUMMARY LibreTranslate provider — JSON POST to a configurable self-hosted or public endpoint.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// LibreTranslate calls a LibreTranslate-compatible endpoint.
type LibreTranslate struct {
	// BaseURL is the endpoint root, e.g. "https://libretranslate.example".
	BaseURL string
	// APIKey is sent when the instance requires one. Optional.
	APIKey string
	Client *http.Client
}

// NewLibreTranslate returns a provider for the given endpoint.
func NewLibreTranslate(baseURL string) *LibreTranslate {
	return &LibreTranslate{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

func (l *LibreTranslate) Translate(ctx context.Context, text, source, target string) (string, error) {
	if l.BaseURL == "" {
		return "", fmt.Errorf("libretranslate: %w: no endpoint configured", ErrProviderUnavailable)
	}
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	payload := map[string]string{
		"q":      text,
		"source": source,
		"target": target,
		"format": "text",
	}
	if l.APIKey != "" {
		payload["api_key"] = l.APIKey
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("libretranslate: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("libretranslate: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("libretranslate: %w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("libretranslate: %w: http %d", ErrProviderUnavailable, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderResponse))
	if err != nil {
		return "", fmt.Errorf("libretranslate: read body: %w", err)
	}

	var parsed struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("libretranslate: json decode: %w", err)
	}

	out := strings.TrimSpace(parsed.TranslatedText)
	if out == "" {
		return "", fmt.Errorf("libretranslate: %w: empty translation", ErrProviderUnavailable)
	}
	return out, nil
}
