// Package pipeline runs one cratelink invocation: fetch the crate's
// metadata, resolve the requested link, dispatch it.
//
// # Architecture
//
// The pipeline consists of three stages, run once each and in order:
//
//  1. Fetch: one GET against the registry
//  2. Resolve: pick the requested link from the fetched metadata
//  3. Dispatch: hand the link to the browser (or print it)
//
// A failure at any stage ends the run. Each failure is returned as an
// [errors.Error] whose message is the sentence shown to the user for that
// stage and whose code is the code of the underlying failure:
//
//	fetch:    Could not find crate information for '{name}'.
//	resolve:  The {field} link isn't set for that crate.
//	dispatch: Could not open the link.
//
// [StageOf] recovers the failing stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(crates.NewClient(), links.NewResolver(""), launch.NewBrowser(nil), logger)
//	result, err := runner.Execute(ctx, pipeline.Request{Crate: "serde", Destination: links.Documentation})
//
// Run individual stages:
//
//	info, err := runner.Fetch(ctx, "serde")
//	url, err := runner.Resolve(ctx, info, links.Repository)
//	err = runner.Dispatch(ctx, url)
//
// [errors.Error]: github.com/matzehuels/cratelink/pkg/errors.Error
package pipeline

import (
	stderrors "errors"
	"time"

	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/integrations/crates"
	"github.com/matzehuels/cratelink/pkg/links"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageFetch    Stage = "fetch"
	StageResolve  Stage = "resolve"
	StageDispatch Stage = "dispatch"
)

// Messages shown to the user for fetch and dispatch failures. Resolve
// failures carry their own message.
const (
	fetchFailedFormat = "Could not find crate information for '%s'."
	dispatchFailed    = "Could not open the link."
)

// Request selects a crate and the link to open.
type Request struct {
	Crate       string
	Destination links.Destination
}

// Result describes a run. On a resolve or dispatch failure the Result
// returned alongside the error still carries Info and Summary so callers
// can show what the crate does publish.
type Result struct {
	Info    *crates.CrateInfo
	URL     string
	Summary string
	Stats   Stats
}

// Stats holds stage timings.
type Stats struct {
	FetchTime    time.Duration
	DispatchTime time.Duration
}

// StageError records which stage failed. It sits between the user-facing
// [errors.Error] and the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return string(e.Stage) + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage that produced err, or "" if err did not come
// from a Runner.
func StageOf(err error) Stage {
	var se *StageError
	if stderrors.As(err, &se) {
		return se.Stage
	}
	return ""
}

func fetchError(crate string, cause error) error {
	code := errors.GetCode(cause)
	if code == "" {
		code = errors.ErrCodeTransport
	}
	return errors.Wrap(code, &StageError{Stage: StageFetch, Err: cause}, fetchFailedFormat, crate)
}

func resolveError(cause error) error {
	code := errors.GetCode(cause)
	if code == "" {
		code = errors.ErrCodeInvalidInput
	}
	return errors.Wrap(code, &StageError{Stage: StageResolve, Err: cause}, "%s", errors.UserMessage(cause))
}

func dispatchError(cause error) error {
	return errors.Wrap(errors.ErrCodeDispatch, &StageError{Stage: StageDispatch, Err: cause}, "%s", dispatchFailed)
}
