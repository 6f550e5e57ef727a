package proxyclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pricofy/voice-translator/internal/domain"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
		err      error
		anyErr   bool
	}{
		{name: "success", status: 200, body: `{"translations":[{"text":"你好"}]}`, expected: "你好"},
		{name: "first translation wins", status: 200, body: `{"translations":[{"text":"一"},{"text":"二"}]}`, expected: "一"},
		{name: "proxy failure", status: 500, body: "Translation failed", err: ErrNotOK},
		{name: "bad request", status: 400, body: "text is required", err: ErrNotOK},
		{name: "empty translations", status: 200, body: `{"translations":[]}`, err: ErrNoTranslation},
		{name: "missing translations", status: 200, body: `{}`, err: ErrNoTranslation},
		{name: "not json", status: 200, body: `oops`, anyErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.TranslateRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/translate", r.URL.Path)
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			text, err := New(srv.URL+"/", nil).Translate(context.Background(), "hello", "ZH")
			require.Equal(t, domain.TranslateRequest{Text: "hello", TargetLang: "ZH"}, got)

			switch {
			case tt.err != nil:
				require.ErrorIs(t, err, tt.err)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.expected, text)
			}
		})
	}
}

func TestTranslate_ProxyDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Translate(context.Background(), "hello", "ZH")
	require.Error(t, err)
}

func TestErrorMessages(t *testing.T) {
	require.Equal(t, "Network response was not ok", ErrNotOK.Error())
	require.Equal(t, "No translation found", ErrNoTranslation.Error())
}
