package integrations

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/cratelink/pkg/errors"
	"github.com/matzehuels/cratelink/pkg/observability"
)

// Client provides shared HTTP functionality for registry API clients.
// It applies default request headers, classifies failures into the
// transport / bad-status / decode error codes and reports each request to
// the configured [observability.HTTPHooks].
//
// Every call issues exactly one request; there is no retry.
type Client struct {
	http    *http.Client
	headers map[string]string
	hooks   observability.HTTPHooks
}

// NewClient creates a Client with the given HTTP client and default headers.
// Headers are applied to all requests made through this client.
// A nil httpClient selects [NewHTTPClient] with the default timeout; nil
// hooks select the no-op implementation.
func NewClient(httpClient *http.Client, headers map[string]string, hooks observability.HTTPHooks) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	return &Client{
		http:    httpClient,
		headers: headers,
		hooks:   observability.OrNoopHTTP(hooks),
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// It uses the client's default headers.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	return c.GetWithHeaders(ctx, url, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, url, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeDecode, err, "decode response from %s", url)
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			err = stderrors.New("unexpected data after JSON value")
		}
		return errors.Wrap(errors.ErrCodeDecode, err, "decode response from %s", url)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "build request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	c.hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		c.hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, "GET %s", url)
	}
	c.hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, errors.Wrap(errors.ErrCodeBadStatus, err, "GET %s", url)
	}
	return resp.Body, nil
}

// StatusError reports a non-2xx registry response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bad status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func checkStatus(code int) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &StatusError{StatusCode: code}
}
