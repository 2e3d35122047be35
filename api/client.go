// Package api is the single point of outbound traffic to the
// content-management backend. It wraps a resty client with bearer
// authentication, error mapping and the ambient unauthorized hook; typed
// endpoint helpers live alongside it.
package api

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"cmsadmin/logger"
	"cmsadmin/metrics"
)

// TokenSource supplies the current bearer credential. An empty token means
// the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the backend API.
type Client struct {
	rc      *resty.Client
	baseURL string
	timeout time.Duration

	tokens TokenSource

	// onUnauthorized fires on every 401 response, whatever call produced
	// it. Idempotence is the hook owner's concern.
	onUnauthorized func()
}

// NewClient creates a backend API client. Requests are never retried
// automatically; retry is the operator's action.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend API URL: %w", err)
	}

	rc := resty.New()
	rc.SetBaseURL(normalized)
	rc.SetTimeout(timeout)
	rc.SetHeader("Accept", "application/json")

	c := &Client{
		rc:      rc,
		baseURL: normalized,
		timeout: timeout,
		tokens:  tokens,
	}

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if c.tokens != nil {
			if t := c.tokens.Token(); t != "" {
				req.SetHeader("Authorization", "Bearer "+t)
			}
		}
		logger.Get().Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("Backend API request")
		return nil
	})

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Get().Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("Backend API response")
		metrics.ObserveBackend(resp.Request.Method, endpointLabel(resp.Request.URL), resp.StatusCode(), resp.Time())
		if resp.StatusCode() == 401 && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil
	})

	return c, nil
}

// OnUnauthorized registers the hook invoked on any 401 response.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// SetTokenSource installs the bearer credential source. The client and the
// session manager reference each other, so the source arrives after
// construction; until then requests go out unauthenticated.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the configured request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// get performs a GET request and unmarshals the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req := c.rc.R().SetContext(ctx).SetResult(out)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	return c.finish(resp, err, "GET", path)
}

// postJSON performs a POST request with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.rc.R().SetContext(ctx).SetBody(body).SetResult(out).Post(path)
	return c.finish(resp, err, "POST", path)
}

// putJSON performs a PUT request with a JSON body.
func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.rc.R().SetContext(ctx).SetBody(body).SetResult(out).Put(path)
	return c.finish(resp, err, "PUT", path)
}

// postForm performs a POST request with a form-url-encoded body.
func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	resp, err := c.rc.R().SetContext(ctx).SetFormDataFromValues(form).SetResult(out).Post(path)
	return c.finish(resp, err, "POST", path)
}

// postMultipart performs a POST request with a single multipart file field.
func (c *Client) postMultipart(ctx context.Context, path, field, filename string, reader io.Reader, out any) error {
	resp, err := c.rc.R().SetContext(ctx).SetFileReader(field, filename, reader).SetResult(out).Post(path)
	return c.finish(resp, err, "POST", path)
}

// delete performs a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.rc.R().SetContext(ctx).Delete(path)
	return c.finish(resp, err, "DELETE", path)
}

// finish maps transport failures and error statuses to *RequestError.
func (c *Client) finish(resp *resty.Response, err error, method, path string) error {
	if err != nil {
		return &RequestError{Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	if resp.IsError() {
		return &RequestError{
			Status: resp.StatusCode(),
			Detail: decodeDetail(resp.Body()),
		}
	}
	return nil
}

// normalizeBaseURL validates the backend URL and strips any trailing slash.
func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host")
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// endpointLabel reduces a request URL to its path so the metric label set
// stays bounded.
func endpointLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid"
	}
	return u.Path
}
