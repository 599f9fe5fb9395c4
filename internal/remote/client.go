// Package remote talks to the external synthesis service over HTTP JSON.
// The client makes exactly one attempt per call and relies on the
// transport's timeout; the caller decides what to do on failure.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
	"github.com/Bahjat/page-composer/backend/internal/platform/requestid"
)

const (
	maxRedirects    = 5
	maxResponseBody = 1 << 20 // 1 MB
	userAgent       = "PageComposer/1.0"
)

var (
	errTooManyRedirects = errors.New("too many redirects")
	errBlockedRedirect  = errors.New("redirect to non-http(s) scheme blocked")
	errRejected         = errors.New("synthesis rejected")
	errEmptyPlan        = errors.New("success response without a page configuration")
)

// Client calls the remote synthesis endpoint.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns a Client posting to endpoint with the given timeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
			CheckRedirect: safeRedirectPolicy,
		},
	}
}

// safeRedirectPolicy validates redirect targets and limits the redirect chain length.
func safeRedirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: %s", errBlockedRedirect, req.URL.Scheme)
	}
	return nil
}

// Synthesize sends req to the remote service. A returned response always
// has Success set and a non-nil plan. Failures are *errs.AppError values of
// kind Unreachable, Timeout or UpstreamFailed.
func (c *Client) Synthesize(ctx context.Context, req model.SynthesisRequest) (*model.SynthesisResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode synthesis request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &errs.AppError{Kind: errs.Unreachable, Message: "invalid synthesis endpoint", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set("X-Request-ID", id)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.AppError{
			Kind:           errs.UpstreamFailed,
			UpstreamStatus: resp.StatusCode,
			Message:        fmt.Sprintf("synthesis service returned HTTP %d", resp.StatusCode),
		}
	}

	var out model.SynthesisResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &errs.AppError{
			Kind:           errs.UpstreamFailed,
			UpstreamStatus: resp.StatusCode,
			Message:        "synthesis service returned malformed JSON",
			Cause:          err,
		}
	}

	switch {
	case !out.Success:
		return nil, &errs.AppError{
			Kind:           errs.UpstreamFailed,
			UpstreamStatus: resp.StatusCode,
			Message:        "synthesis service reported failure",
			Cause:          fmt.Errorf("%w: %s", errRejected, out.Error),
		}
	case out.PageConfig == nil:
		return nil, &errs.AppError{
			Kind:           errs.UpstreamFailed,
			UpstreamStatus: resp.StatusCode,
			Message:        "synthesis service returned no plan",
			Cause:          errEmptyPlan,
		}
	}
	return &out, nil
}

func transportError(ctx context.Context, err error) error {
	var netErr net.Error
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &errs.AppError{Kind: errs.Timeout, Message: "synthesis service timed out", Cause: err}
	}
	return &errs.AppError{Kind: errs.Unreachable, Message: "synthesis service unreachable", Cause: err}
}
