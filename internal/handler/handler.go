// Package handler provides the translation proxy handlers for plain HTTP and
// API Gateway (Lambda) deployments.
package handler

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pricofy/voice-translator/internal/domain"
)

// FailureMessage is the fixed body returned when the provider call fails.
const FailureMessage = "Translation failed"

// Translator forwards a request to the translation provider and returns the
// provider body unchanged.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) ([]byte, error)
}

// Request is the input to the translation proxy.
type Request = domain.TranslateRequest

// Response is the transport-independent result of a proxy call.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte

	// Allow lists the accepted methods on a 405.
	Allow string
}

// Handler serves translation requests.
type Handler struct {
	translator Translator
	logger     zerolog.Logger
}

// New creates a Handler.
func New(t Translator, logger zerolog.Logger) *Handler {
	return &Handler{
		translator: t,
		logger:     logger.With().Str("component", "proxy").Logger(),
	}
}

// Handle processes a translation request.
// Provider output is relayed verbatim; any provider failure collapses to a
// 500 with FailureMessage.
func (h *Handler) Handle(ctx context.Context, req Request) *Response {
	logger := zerolog.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &h.logger
	}

	if err := validateRequest(req); err != nil {
		logger.Warn().Err(err).Msg("rejected translation request")
		return textResponse(http.StatusBadRequest, err.Error())
	}

	logger.Info().Str("text", req.Text).Str("target_lang", req.TargetLang).Msg("sending request to provider")

	body, err := h.translator.Translate(ctx, req.Text, req.TargetLang)
	if err != nil {
		logger.Error().Err(err).Msg("error during translation")
		return textResponse(http.StatusInternalServerError, FailureMessage)
	}

	logger.Info().RawJSON("response", body).Msg("received response from provider")
	return &Response{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        body,
	}
}

func textResponse(status int, msg string) *Response {
	return &Response{
		StatusCode:  status,
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(msg),
	}
}

// validateRequest checks the request is valid.
func validateRequest(req Request) error {
	if req.Text == "" {
		return errors.New("text is required")
	}
	if req.TargetLang == "" {
		return errors.New("target_lang is required")
	}
	return nil
}
