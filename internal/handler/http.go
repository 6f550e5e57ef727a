package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// maxBodyBytes caps a /translate request body at 100KiB.
const maxBodyBytes = 100 << 10

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,HEAD,PUT,PATCH,POST,DELETE",
	"Access-Control-Allow-Headers": "Content-Type, Authorization",
}

// Routes returns the proxy's HTTP handler.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /translate", h.serveTranslate)
	mux.HandleFunc("GET /health", serveHealth)
	return h.withRequestLogger(withCORS(mux))
}

func (h *Handler) serveTranslate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeResponse(w, textResponse(http.StatusRequestEntityTooLarge, "request body too large"))
			return
		}
		writeResponse(w, textResponse(http.StatusBadRequest, "invalid request body"))
		return
	}
	writeResponse(w, h.Handle(r.Context(), req))
}

func serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

// withCORS allows requests from any origin and answers preflights.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRequestLogger tags each request with an id and a scoped logger.
func (h *Handler) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		logger := h.logger.With().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
	})
}
