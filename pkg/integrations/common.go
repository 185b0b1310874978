package integrations

import (
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single registry request.
const DefaultTimeout = 10 * time.Second

// NewHTTPClient creates an HTTP client for registry requests.
// A non-positive timeout selects [DefaultTimeout].
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// StatusCode returns the HTTP status carried by err, if err (or any error it
// wraps) is a [*StatusError].
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if stderrors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// JoinPath appends a single path segment to base.
// The segment is percent-escaped but otherwise passed through unchanged;
// an empty segment yields base followed by a slash.
func JoinPath(base, segment string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(segment)
}
