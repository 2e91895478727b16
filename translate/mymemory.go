// CLAUDE:SUMMARY MyMemory free translation API provider — GET with langpair, JSON response walking.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultMyMemoryURL = "https://api.mymemory.translated.net/get"

// maxProviderResponse bounds how much of a provider response body is read.
const maxProviderResponse = 1 << 20

// MyMemory is the free MyMemory translation API.
type MyMemory struct {
	BaseURL string
	Client  *http.Client
}

// NewMyMemory returns a MyMemory provider with sane defaults.
func NewMyMemory() *MyMemory {
	return &MyMemory{
		BaseURL: defaultMyMemoryURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *MyMemory) Name() string { return "mymemory" }

func (m *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	base := m.BaseURL
	if base == "" {
		base = defaultMyMemoryURL
	}
	client := m.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("mymemory: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mymemory: %w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory: %w: http %d", ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderResponse))
	if err != nil {
		return "", fmt.Errorf("mymemory: read body: %w", err)
	}

	var parsed struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus any `json:"responseStatus"` // int or quoted string, API is loose
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("mymemory: json decode: %w", err)
	}

	out := strings.TrimSpace(parsed.ResponseData.TranslatedText)
	if out == "" {
		return "", fmt.Errorf("mymemory: %w: empty translation", ErrProviderUnavailable)
	}
	return out, nil
}
