package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cratelink/pkg/integrations/crates"
	"github.com/matzehuels/cratelink/pkg/launch"
	"github.com/matzehuels/cratelink/pkg/links"
	"github.com/matzehuels/cratelink/pkg/observability"
)

// Fetcher retrieves crate metadata. [*crates.Client] implements it.
type Fetcher interface {
	FetchCrate(ctx context.Context, name string) (*crates.CrateInfo, error)
}

// Runner encapsulates pipeline execution.
//
// The Runner holds no per-run state; a run is a single linear pass with no
// retries.
type Runner struct {
	Fetcher  Fetcher
	Resolver *links.Resolver
	Launcher launch.Launcher
	Logger   *log.Logger

	hooks observability.PipelineHooks
}

// Option configures a Runner.
type Option func(*Runner)

// WithHooks reports stage events to h.
func WithHooks(h observability.PipelineHooks) Option {
	return func(r *Runner) { r.hooks = observability.OrNoopPipeline(h) }
}

// NewRunner creates a runner.
// If resolver is nil, one for crates.io is used.
// If logger is nil, log.Default() is used.
func NewRunner(f Fetcher, resolver *links.Resolver, l launch.Launcher, logger *log.Logger, opts ...Option) *Runner {
	if resolver == nil {
		resolver = links.NewResolver("")
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Fetcher:  f,
		Resolver: resolver,
		Launcher: l,
		Logger:   logger,
		hooks:    observability.NoopPipelineHooks{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs the complete fetch → resolve → dispatch pipeline.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	info, err := r.Fetch(ctx, req.Crate)
	if err != nil {
		return nil, err
	}
	result.Info = info
	result.Summary = r.Resolver.Summary(info)
	result.Stats.FetchTime = time.Since(fetchStart)

	// Stage 2: Resolve
	url, err := r.Resolve(ctx, info, req.Destination)
	if err != nil {
		return result, err
	}
	result.URL = url

	// Stage 3: Dispatch
	dispatchStart := time.Now()
	if err := r.Dispatch(ctx, url); err != nil {
		return result, err
	}
	result.Stats.DispatchTime = time.Since(dispatchStart)

	return result, nil
}

// Fetch retrieves metadata for crate.
func (r *Runner) Fetch(ctx context.Context, crate string) (*crates.CrateInfo, error) {
	r.hooks.OnFetchStart(ctx, crate)
	start := time.Now()

	info, err := r.Fetcher.FetchCrate(ctx, crate)
	r.hooks.OnFetchComplete(ctx, crate, time.Since(start), err)
	if err != nil {
		r.Logger.Debug("fetch failed", "crate", crate, "err", err)
		return nil, fetchError(crate, err)
	}

	r.Logger.Debug("fetched crate",
		"name", info.Name,
		"homepage", deref(info.Homepage),
		"documentation", deref(info.Documentation),
		"repository", deref(info.Repository),
		"duration", time.Since(start).Round(time.Millisecond))
	return info, nil
}

// Resolve selects the link for dest.
func (r *Runner) Resolve(ctx context.Context, info *crates.CrateInfo, dest links.Destination) (string, error) {
	url, err := r.Resolver.Resolve(info, dest)
	name := ""
	if info != nil {
		name = info.Name
	}
	r.hooks.OnResolve(ctx, name, dest.String(), err)
	if err != nil {
		if f, ok := links.MissingField(err); ok {
			r.Logger.Debug("link not set", "crate", name, "field", f)
		}
		return "", resolveError(err)
	}
	r.Logger.Debug("resolved link", "link", dest, "url", url)
	return url, nil
}

// Dispatch hands url to the launcher.
func (r *Runner) Dispatch(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		r.hooks.OnDispatch(ctx, url, err)
		return dispatchError(err)
	}
	err := r.Launcher.Open(url)
	r.hooks.OnDispatch(ctx, url, err)
	if err != nil {
		r.Logger.Debug("dispatch failed", "url", url, "err", err)
		return dispatchError(err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return "<unset>"
	}
	return *s
}
