// Package proxyclient calls the translation proxy on behalf of the capture
// flow.
package proxyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/pricofy/voice-translator/internal/domain"
)

var (
	// ErrNotOK is returned for any non-2xx proxy response.
	ErrNotOK = errors.New("Network response was not ok")

	// ErrNoTranslation is returned when the response has no translations.
	ErrNoTranslation = errors.New("No translation found")
)

// Client posts utterances to the proxy's /translate endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the proxy at baseURL.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

// Translate returns the first translation of text into targetLang.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	payload, err := json.Marshal(domain.TranslateRequest{Text: text, TargetLang: targetLang})
	if err != nil {
		return "", errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "call proxy")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ErrNotOK
	}

	var result domain.TranslationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "decode response")
	}
	if len(result.Translations) == 0 {
		return "", ErrNoTranslation
	}
	return result.Translations[0].Text, nil
}
