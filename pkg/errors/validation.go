package errors

import (
	"net/url"
	"strings"
)

// ValidateURL validates a URL string for safety before it is handed to a
// browser. Only http and https schemes are accepted.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateBaseURL validates an endpoint root taken from configuration.
// It must be an absolute http(s) URL with a host; a trailing slash is allowed.
func ValidateBaseURL(key, rawURL string) error {
	if err := ValidateURL(rawURL); err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "%s: %q is not a valid base URL", key, rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "%s: %q is not a valid base URL", key, rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "%s: %q has no host", key, rawURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidConfig, "%s: %q must not carry a query or fragment", key, rawURL)
	}
	return nil
}
