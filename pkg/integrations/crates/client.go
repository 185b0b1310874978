package crates

import (
	"context"
	"time"

	"github.com/matzehuels/cratelink/pkg/buildinfo"
	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/integrations"
	"github.com/matzehuels/cratelink/pkg/observability"
)

// DefaultBaseURL is the crates.io API root that crate names are appended to.
const DefaultBaseURL = "https://crates.io/api/v1/crates"

// UserAgent identifies cratelink to registry operators, as crates.io
// policy requires.
func UserAgent() string {
	return "cratelink/" + buildinfo.Short() + " (https://github.com/matzehuels/cratelink)"
}

// CrateInfo holds the link metadata of a Rust crate from crates.io.
//
// Name is always set on a value returned by [Client.FetchCrate]. Each link
// field is nil when the registry reports it as absent, null or ""; any
// subset of them may be set. Other keys in the registry payload are ignored.
// A CrateInfo is not modified after decoding.
type CrateInfo struct {
	Name          string  `json:"name"`
	Homepage      *string `json:"homepage"`
	Documentation *string `json:"documentation"`
	Repository    *string `json:"repository"`
}

// Client provides access to the crates.io package registry API.
//
// Note: crates.io requires a User-Agent header; this client sets one automatically.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a [Client].
type Option func(*options)

type options struct {
	baseURL string
	timeout time.Duration
	hooks   observability.HTTPHooks
}

// WithBaseURL overrides the API root. An empty value keeps [DefaultBaseURL].
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = u
		}
	}
}

// WithTimeout bounds the registry request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPHooks reports the registry request to h.
func WithHTTPHooks(h observability.HTTPHooks) Option {
	return func(o *options) { o.hooks = h }
}

// NewClient creates a crates.io client.
func NewClient(opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}
	httpClient := integrations.NewHTTPClient(o.timeout)
	headers := map[string]string{
		"User-Agent": UserAgent(),
		"Accept":     "application/json",
	}
	return &Client{
		Client:  integrations.NewClient(httpClient, headers, o.hooks),
		baseURL: o.baseURL,
	}
}

// FetchCrate retrieves link metadata for a Rust crate from crates.io.
//
// The name is sent as given; an empty name is not rejected locally and the
// registry's answer decides the outcome.
//
// Returns:
//   - CrateInfo on success
//   - an error coded TRANSPORT for network failures (DNS, connect, timeout)
//   - an error coded BAD_STATUS for any non-2xx response
//   - an error coded DECODE when the body is not {"crate": {"name": ...}}
func (c *Client) FetchCrate(ctx context.Context, name string) (*CrateInfo, error) {
	var data crateResponse
	if err := c.Get(ctx, integrations.JoinPath(c.baseURL, name), &data); err != nil {
		return nil, err
	}
	if data.Crate == nil {
		return nil, errors.New(errors.ErrCodeDecode, "response for %q has no crate object", name)
	}
	if data.Crate.Name == "" {
		return nil, errors.New(errors.ErrCodeDecode, "response for %q has no crate name", name)
	}

	info := *data.Crate
	info.Homepage = nonEmpty(info.Homepage)
	info.Documentation = nonEmpty(info.Documentation)
	info.Repository = nonEmpty(info.Repository)
	return &info, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

type crateResponse struct {
	Crate *CrateInfo `json:"crate"`
}
