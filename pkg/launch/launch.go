// Package launch hands resolved links to the outside world: the default
// browser, or a writer when the user only wants the URL printed.
package launch

import (
	"fmt"
	"io"

	"github.com/pkg/browser"

	"github.com/matzehuels/cratelink/pkg/errors"
)

// Launcher dispatches a single URL.
type Launcher interface {
	Open(url string) error
}

// Browser opens URLs in the system's default browser.
type Browser struct {
	open func(string) error
}

// NewBrowser returns a Browser backed by github.com/pkg/browser.
//
// output receives anything the launcher process prints; nil discards it.
// github.com/pkg/browser keeps its output streams in package variables, so
// the last NewBrowser call decides them for the whole process.
func NewBrowser(output io.Writer) *Browser {
	if output == nil {
		output = io.Discard
	}
	browser.Stdout = output
	browser.Stderr = output
	return &Browser{open: browser.OpenURL}
}

// Open validates that url is an http(s) link and opens it.
// Failures are coded DISPATCH.
func (b *Browser) Open(url string) error {
	if err := errors.ValidateURL(url); err != nil {
		return errors.Wrap(errors.ErrCodeDispatch, err, "refusing to open %q", url)
	}
	open := b.open
	if open == nil {
		open = browser.OpenURL
	}
	if err := open(url); err != nil {
		return errors.Wrap(errors.ErrCodeDispatch, err, "open %s", url)
	}
	return nil
}

// Printer writes the URL on its own line instead of opening it.
type Printer struct {
	W io.Writer
}

// Open writes url followed by a newline to p.W.
func (p Printer) Open(url string) error {
	if _, err := fmt.Fprintln(p.W, url); err != nil {
		return errors.Wrap(errors.ErrCodeDispatch, err, "print %s", url)
	}
	return nil
}
