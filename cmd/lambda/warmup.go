// Package main contains the warmup handler that keeps proxy instances hot.
// A scheduled event triggers it; with concurrency > 0 it self-invokes that
// many asynchronous copies so several instances stay warm at once.
package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// WarmupSource identifies warmup events.
	WarmupSource = "warmup"

	// WarmupDelay keeps this instance busy long enough for the self-invoked
	// copies to land on other instances.
	WarmupDelay = 75 * time.Millisecond
)

// WarmupEvent is the scheduled warmup payload.
type WarmupEvent struct {
	Source      string `json:"source"`
	Concurrency int    `json:"concurrency"`
}

// WarmupResponse is returned by warmup invocations.
type WarmupResponse struct {
	Status          string `json:"status"`
	InstancesWarmed int    `json:"instancesWarmed"`
}

// IsWarmupEvent reports whether event is a warmup event and decodes it.
func IsWarmupEvent(event json.RawMessage) (*WarmupEvent, bool) {
	var probe struct {
		Source      *string  `json:"source"`
		Concurrency *float64 `json:"concurrency"`
	}
	if err := json.Unmarshal(event, &probe); err != nil {
		return nil, false
	}
	if probe.Source == nil || *probe.Source != WarmupSource {
		return nil, false
	}

	warmup := &WarmupEvent{Source: WarmupSource}
	if probe.Concurrency != nil && *probe.Concurrency > 0 {
		warmup.Concurrency = int(*probe.Concurrency)
	}
	return warmup, true
}

// invoker is the slice of the Lambda API the warmer needs.
type invoker interface {
	Invoke(ctx context.Context, in *lambdasdk.InvokeInput, optFns ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error)
}

type warmer struct {
	functionName string
	delay        time.Duration

	once      sync.Once
	client    invoker
	clientErr error
	newClient func(ctx context.Context) (invoker, error)
}

func newWarmer() *warmer {
	return &warmer{
		functionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		delay:        WarmupDelay,
		newClient: func(ctx context.Context) (invoker, error) {
			cfg, err := config.LoadDefaultConfig(ctx)
			if err != nil {
				return nil, errors.Wrap(err, "failed to load AWS config")
			}
			return lambdasdk.NewFromConfig(cfg), nil
		},
	}
}

// Handle answers a warmup event, self-invoking when asked to.
func (w *warmer) Handle(ctx context.Context, warmup *WarmupEvent) (interface{}, error) {
	instancesWarmed := 1 // this instance

	if warmup.Concurrency > 0 {
		if err := w.selfInvoke(ctx, warmup.Concurrency); err != nil {
			log.Warn().Err(err).Int("concurrency", warmup.Concurrency).Msg("warmup self-invoke failed")
		} else {
			instancesWarmed += warmup.Concurrency
		}
	}

	time.Sleep(w.delay)

	return map[string]interface{}{
		"statusCode": 200,
		"body": WarmupResponse{
			Status:          "warm",
			InstancesWarmed: instancesWarmed,
		},
	}, nil
}

// selfInvoke fires count asynchronous invocations of this function.
func (w *warmer) selfInvoke(ctx context.Context, count int) error {
	w.once.Do(func() { w.client, w.clientErr = w.newClient(ctx) })
	if w.clientErr != nil {
		return w.clientErr
	}

	// children get concurrency 0 so they never fan out again
	payload, err := json.Marshal(WarmupEvent{Source: WarmupSource})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			_, err := w.client.Invoke(gctx, &lambdasdk.InvokeInput{
				FunctionName:   aws.String(w.functionName),
				InvocationType: types.InvocationTypeEvent,
				Payload:        payload,
			})
			return err
		})
	}
	return g.Wait()
}
