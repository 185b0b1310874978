// Package observability provides hooks for tracing the registry request and
// the stages of the link pipeline.
//
// Hooks are plain interfaces with no-op defaults. The CLI supplies concrete
// implementations (for example, debug logging) when it builds the registry
// client and the pipeline runner; library code receives them as values and
// never looks them up globally.
//
// # Usage
//
//	client := crates.NewClient(crates.WithHTTPHooks(myHooks))
//	runner := pipeline.NewRunner(client, resolver, launcher, logger,
//	    pipeline.WithHooks(myPipelineHooks))
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the fetch → resolve → dispatch pipeline.
type PipelineHooks interface {
	// Fetch events
	OnFetchStart(ctx context.Context, crate string)
	OnFetchComplete(ctx context.Context, crate string, duration time.Duration, err error)

	// Resolve events
	OnResolve(ctx context.Context, crate, destination string, err error)

	// Dispatch events
	OnDispatch(ctx context.Context, url string, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnFetchStart(context.Context, string)                          {}
func (NoopPipelineHooks) OnFetchComplete(context.Context, string, time.Duration, error) {}
func (NoopPipelineHooks) OnResolve(context.Context, string, string, error)              {}
func (NoopPipelineHooks) OnDispatch(context.Context, string, error)                     {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// OrNoopHTTP returns h, or NoopHTTPHooks if h is nil.
func OrNoopHTTP(h HTTPHooks) HTTPHooks {
	if h == nil {
		return NoopHTTPHooks{}
	}
	return h
}

// OrNoopPipeline returns h, or NoopPipelineHooks if h is nil.
func OrNoopPipeline(h PipelineHooks) PipelineHooks {
	if h == nil {
		return NoopPipelineHooks{}
	}
	return h
}
