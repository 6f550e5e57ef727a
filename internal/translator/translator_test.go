package translator

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pricofy/voice-translator/internal/config"
)

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := New(&config.Config{DeepLAuthKey: "test-key:fx", DeepLURL: srv.URL})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(&config.Config{DeepLURL: config.DefaultDeepLURL})
	require.Error(t, err)

	_, err = New(nil)
	require.Error(t, err)
}

func TestTranslate_SendsFormRequest(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "DeepL-Auth-Key test-key:fx", r.Header.Get("Authorization"))
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		got, err = url.ParseQuery(string(body))
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translations":[{"detected_source_language":"EN","text":"你好"}]}`))
	}))
	defer srv.Close()

	body, err := newTestClient(t, srv).Translate(context.Background(), "hello", "ZH")
	require.NoError(t, err)
	require.Equal(t, "hello", got.Get("text"))
	require.Equal(t, "ZH", got.Get("target_lang"))
	require.JSONEq(t, `{"translations":[{"detected_source_language":"EN","text":"你好"}]}`, string(body))
}

func TestTranslate_ReturnsBodyVerbatim(t *testing.T) {
	raw := `{"translations": [ {"text":"你好","extra":1} ], "billed_characters": 5}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(raw))
	}))
	defer srv.Close()

	body, err := newTestClient(t, srv).Translate(context.Background(), "hello", "ZH")
	require.NoError(t, err)
	require.Equal(t, raw, string(body))
}

func TestTranslate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "forbidden", status: http.StatusForbidden, body: `{"message":"Wrong key"}`},
		{name: "quota exceeded", status: 456, body: ""},
		{name: "not json", status: http.StatusOK, body: "<html>", malformed: true},
		{name: "missing translations", status: http.StatusOK, body: `{"message":"ok"}`, malformed: true},
		{name: "null translations", status: http.StatusOK, body: `{"translations":null}`, malformed: true},
		{name: "wrong translations type", status: http.StatusOK, body: `{"translations":"x"}`, malformed: true},
		{name: "empty translations", status: http.StatusOK, body: `{"translations":[]}`, malformed: true},
		{name: "translation without text", status: http.StatusOK, body: `{"translations":[{"detected_source_language":"EN"}]}`, malformed: true},
		{name: "second translation without text", status: http.StatusOK, body: `{"translations":[{"text":"你好"},{}]}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv).Translate(context.Background(), "hello", "ZH")
			require.Error(t, err)

			if tt.malformed {
				require.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			var se *StatusError
			require.True(t, errors.As(err, &se))
			require.Equal(t, tt.status, se.StatusCode)
			require.Equal(t, tt.body, se.Body)
		})
	}
}

func TestTranslate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newTestClient(t, srv)
	srv.Close()

	_, err := c.Translate(context.Background(), "hello", "ZH")
	require.Error(t, err)
}
