package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxRemoteResponse bounds a recognition response body (4 MiB).
const maxRemoteResponse = 4 << 20

// Remote is an Engine that calls an HTTP recognition service. The service
// accepts a JSON body {image, language} with the image base64-encoded and
// answers {text, confidence}.
type Remote struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

// NewRemote constructs a Remote engine for the given endpoint.
func NewRemote(endpoint string) *Remote {
	return &Remote{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Remote) Name() string { return "remote" }

func (r *Remote) Recognize(ctx context.Context, img []byte, lang string) (Attempt, error) {
	payload, err := json.Marshal(map[string]string{
		"image":    base64.StdEncoding.EncodeToString(img),
		"language": lang,
	})
	if err != nil {
		return Attempt{}, fmt.Errorf("remote ocr encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return Attempt{}, fmt.Errorf("remote ocr request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.APIKey)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return Attempt{}, fmt.Errorf("remote ocr call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Attempt{}, fmt.Errorf("remote ocr: http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponse))
	if err != nil {
		return Attempt{}, fmt.Errorf("remote ocr read: %w", err)
	}

	var out struct {
		Text       string   `json:"text"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return Attempt{}, fmt.Errorf("remote ocr decode: %w", err)
	}

	return Attempt{
		EngineID:     r.Name(),
		LanguageHint: lang,
		Text:         strings.TrimSpace(out.Text),
		Confidence:   out.Confidence,
	}, nil
}
