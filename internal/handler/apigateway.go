package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// HandleAPIGateway serves the proxy contract for API Gateway proxy events.
func (h *Handler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := event.RequestContext.RequestID
	if id == "" {
		id = uuid.NewString()
	}
	logger := h.logger.With().
		Str("request_id", id).
		Str("method", event.HTTPMethod).
		Str("path", event.Path).
		Logger()
	ctx = logger.WithContext(ctx)

	var resp *Response
	switch {
	case event.HTTPMethod == http.MethodOptions:
		resp = &Response{StatusCode: http.StatusNoContent}
	case strings.HasSuffix(event.Path, "/health"):
		if event.HTTPMethod != http.MethodGet && event.HTTPMethod != http.MethodHead {
			resp = methodNotAllowed("GET, HEAD")
			break
		}
		resp = &Response{StatusCode: http.StatusOK, ContentType: "application/json", Body: []byte(`{"status":"ok"}`)}
	case strings.HasSuffix(event.Path, "/translate"):
		if event.HTTPMethod != http.MethodPost {
			resp = methodNotAllowed(http.MethodPost)
			break
		}
		resp = h.handleEventBody(ctx, event)
	default:
		resp = textResponse(http.StatusNotFound, "not found")
	}

	headers := map[string]string{"X-Request-ID": id}
	for k, v := range corsHeaders {
		headers[k] = v
	}
	if resp.ContentType != "" {
		headers["Content-Type"] = resp.ContentType
	}
	if resp.Allow != "" {
		headers["Allow"] = resp.Allow
	}

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       string(resp.Body),
	}, nil
}

// methodNotAllowed matches what http.ServeMux answers for a known path.
func methodNotAllowed(allow string) *Response {
	resp := textResponse(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	resp.Allow = allow
	return resp
}

func (h *Handler) handleEventBody(ctx context.Context, event events.APIGatewayProxyRequest) *Response {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return textResponse(http.StatusBadRequest, "invalid request body")
		}
		body = decoded
	}
	if len(body) > maxBodyBytes {
		return textResponse(http.StatusRequestEntityTooLarge, "request body too large")
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return textResponse(http.StatusBadRequest, "invalid request body")
	}
	return h.Handle(ctx, req)
}
