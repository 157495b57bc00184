// Package fetch retrieves website homepages and classifies failures.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type Kind string

const (
	KindNetwork     Kind = "network"
	KindRateLimited Kind = "rate-limited"
	KindTimeout     Kind = "timeout"
	KindUpstream    Kind = "upstream"
	KindRejected    Kind = "rejected"
)

// Error is the closed fetch failure taxonomy callers map to responses.
type Error struct {
	Kind     Kind
	Hostname string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("fetch %s: %s", e.Hostname, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind, or "" for errors outside the taxonomy.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

const maxBody = 5 << 20

// ErrPageTooLarge marks a homepage over the body cap. Detection on a
// truncated page could miss signatures, so the page is rejected instead.
var ErrPageTooLarge = fmt.Errorf("page exceeds %d bytes", maxBody)

type Fetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	scheme    string
}

type Option func(*Fetcher)

func WithClient(c *http.Client) Option { return func(f *Fetcher) { f.client = c } }

// WithRate limits outbound fetches across all websites.
func WithRate(perSec float64, burst int) Option {
	return func(f *Fetcher) {
		if perSec > 0 {
			if burst < 1 {
				burst = 1
			}
			f.limiter = rate.NewLimiter(rate.Limit(perSec), burst)
		}
	}
}

// WithScheme overrides the https default, used against local test servers.
func WithScheme(scheme string) Option { return func(f *Fetcher) { f.scheme = scheme } }

func New(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "bwa-scanner/1.0",
		scheme:    "https",
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch returns the homepage markup of hostname.
func (f *Fetcher) Fetch(ctx context.Context, hostname string) ([]byte, error) {
	fail := func(kind Kind, status int, err error) error {
		return &Error{Kind: kind, Hostname: hostname, Status: status, Err: err}
	}
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			switch {
			case errors.Is(ctx.Err(), context.DeadlineExceeded):
				return nil, fail(KindTimeout, 0, err)
			case ctx.Err() != nil:
				return nil, fmt.Errorf("fetch %s: %w", hostname, ctx.Err())
			}
			// The wait would outlast the deadline.
			return nil, fail(KindRateLimited, 0, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.scheme+"://"+hostname+"/", nil)
	if err != nil {
		return nil, fail(KindRejected, 0, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fail(KindTimeout, 0, err)
		}
		return nil, fail(KindNetwork, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fail(KindRateLimited, resp.StatusCode, nil)
	case resp.StatusCode == http.StatusGatewayTimeout:
		return nil, fail(KindTimeout, resp.StatusCode, nil)
	case resp.StatusCode >= 500:
		return nil, fail(KindUpstream, resp.StatusCode, nil)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fail(KindRejected, resp.StatusCode, nil)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(strings.ToLower(ct), "html") {
		return nil, fail(KindRejected, resp.StatusCode, fmt.Errorf("unexpected content type %q", ct))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		if isTimeout(err) {
			return nil, fail(KindTimeout, resp.StatusCode, err)
		}
		return nil, fail(KindNetwork, resp.StatusCode, err)
	}
	if len(body) > maxBody {
		return nil, fail(KindRejected, resp.StatusCode, ErrPageTooLarge)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
