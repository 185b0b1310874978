package launch

import (
	"bytes"
	stderrors "errors"
	"io"
	"testing"

	"github.com/pkg/browser"

	"github.com/matzehuels/cratelink/pkg/errors"
)

func TestBrowserOpen(t *testing.T) {
	var opened string
	b := &Browser{open: func(u string) error {
		opened = u
		return nil
	}}

	if err := b.Open("https://docs.rs/serde"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if opened != "https://docs.rs/serde" {
		t.Errorf("opened %q, want %q", opened, "https://docs.rs/serde")
	}
}

func TestBrowserOpenRejectsUnsafeScheme(t *testing.T) {
	called := false
	b := &Browser{open: func(string) error {
		called = true
		return nil
	}}

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "git@github.com:serde-rs/serde.git"} {
		err := b.Open(u)
		if !errors.Is(err, errors.ErrCodeDispatch) {
			t.Errorf("Open(%q) error = %v, want DISPATCH", u, err)
		}
	}
	if called {
		t.Error("launcher must not run for rejected URLs")
	}
}

func TestBrowserOpenFailure(t *testing.T) {
	cause := stderrors.New("xdg-open: not found")
	b := &Browser{open: func(string) error { return cause }}

	err := b.Open("https://serde.rs")
	if !errors.Is(err, errors.ErrCodeDispatch) {
		t.Fatalf("Open() error = %v, want DISPATCH", err)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Open() error should wrap the launcher failure")
	}
}

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	if err := (Printer{W: &buf}).Open("https://serde.rs"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if buf.String() != "https://serde.rs\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNewBrowserOutput(t *testing.T) {
	var buf bytes.Buffer
	NewBrowser(&buf)
	if browser.Stdout != &buf || browser.Stderr != &buf {
		t.Error("NewBrowser should route launcher output to the given writer")
	}

	NewBrowser(nil)
	if browser.Stdout != io.Discard || browser.Stderr != io.Discard {
		t.Error("NewBrowser(nil) should discard launcher output")
	}
}
