// Package main is the entry point for the translation proxy Lambda function.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pricofy/voice-translator/internal/config"
	"github.com/pricofy/voice-translator/internal/handler"
	"github.com/pricofy/voice-translator/internal/translator"
)

func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	tr, err := translator.New(cfg, translator.WithLogger(log.Logger))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create translator")
	}

	fn := &function{
		proxy:  handler.New(tr, log.Logger.With().Str("environment", cfg.Environment).Logger()),
		warmer: newWarmer(),
	}
	lambda.Start(fn.handleRequest)
}

type function struct {
	proxy  *handler.Handler
	warmer *warmer
}

func (f *function) handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection (MUST be first - before any other processing)
	if warmup, ok := IsWarmupEvent(event); ok {
		return f.warmer.Handle(ctx, warmup)
	}

	var req events.APIGatewayProxyRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}
	return f.proxy.HandleAPIGateway(ctx, req)
}
