// Package translator forwards translation requests to the DeepL API.
package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pricofy/voice-translator/internal/config"
)

// ErrMalformedResponse is returned when the provider answers 2xx with a body
// that has no translations array.
var ErrMalformedResponse = errors.New("malformed provider response")

// StatusError reports a non-2xx provider response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// Client sends text to the translation provider using a server-held key.
type Client struct {
	httpClient *http.Client
	endpoint   string
	authKey    string
	logger     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l.With().Str("component", "translator").Logger() }
}

// New creates a new Client from the proxy configuration.
func New(cfg *config.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("translator: nil config")
	}
	if err := cfg.ValidateProxy(); err != nil {
		return nil, errors.Wrap(err, "translator")
	}

	c := &Client{
		httpClient: http.DefaultClient,
		endpoint:   cfg.DeepLURL,
		authKey:    cfg.DeepLAuthKey,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Translate sends text to the provider and returns its response body
// unchanged. The body is checked for a translations array but never
// reshaped.
func (c *Client) Translate(ctx context.Context, text, targetLang string) ([]byte, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.authKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.Debug().Str("text", text).Str("target_lang", targetLang).Msg("sending request to provider")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to call provider")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := checkBody(body); err != nil {
		return nil, err
	}

	c.logger.Debug().RawJSON("response", body).Msg("received response from provider")
	return body, nil
}

// checkBody verifies the body holds a non-empty translations array whose
// entries all carry a text field.
func checkBody(body []byte) error {
	var probe struct {
		Translations *[]struct {
			Text *string `json:"text"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return errors.Wrap(ErrMalformedResponse, err.Error())
	}
	if probe.Translations == nil {
		return errors.Wrap(ErrMalformedResponse, "missing translations field")
	}
	if len(*probe.Translations) == 0 {
		return errors.Wrap(ErrMalformedResponse, "empty translations")
	}
	for i, tr := range *probe.Translations {
		if tr.Text == nil {
			return errors.Wrapf(ErrMalformedResponse, "translation %d has no text", i)
		}
	}
	return nil
}
