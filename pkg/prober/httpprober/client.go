// Package httpprober provides a prober.Prober that checks provider profile
// pages over HTTP and classifies the response status.
package httpprober

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"handlescan/pkg/domain"
	"handlescan/pkg/prober"
	"handlescan/pkg/retry"
	"handlescan/pkg/serrors"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/http2"
)

const (
	// DefaultTimeout bounds a single probe request, redirects included.
	DefaultTimeout = 4000 * time.Millisecond
	// DefaultRedirectLimit is the number of redirects followed before giving up.
	DefaultRedirectLimit = 4
	// DefaultUserAgent is sent with every probe.
	DefaultUserAgent = "handlescan/1.0 (research only)"

	// maxDrain is how much of a response body is read before closing so the
	// connection can be reused.
	maxDrain = 64 << 10
)

var errTooManyRedirects = errors.New("redirect limit exceeded")

// Options configures the HTTP client used for probing.
type Options struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration
	// RedirectLimit is the maximum number of redirects followed.
	RedirectLimit int
	// UserAgent is the User-Agent header value.
	UserAgent string
	// Transport replaces the default HTTP/2-capable transport when set.
	Transport http.RoundTripper
}

// DefaultOptions returns the default probe client settings.
func DefaultOptions() Options {
	return Options{
		Timeout:       DefaultTimeout,
		RedirectLimit: DefaultRedirectLimit,
		UserAgent:     DefaultUserAgent,
	}
}

// Client probes providers over HTTP. It is immutable and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Ensure Client conforms to the prober.Prober interface at compile time.
var _ prober.Prober = (*Client)(nil)

// New builds the probe client. It fails with a TRANSPORT_SETUP error when the
// options are unusable or the transport cannot be configured.
func New(opts Options) (*Client, error) {
	if opts.Timeout <= 0 {
		return nil, serrors.With(serrors.ErrTransportSetup, "timeout must be positive, got %s", opts.Timeout)
	}
	if opts.RedirectLimit < 0 {
		return nil, serrors.With(serrors.ErrTransportSetup, "redirect limit must not be negative, got %d", opts.RedirectLimit)
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	base := opts.Transport
	if base == nil {
		t, ok := http.DefaultTransport.(*http.Transport)
		if !ok {
			return nil, serrors.With(serrors.ErrTransportSetup, "unexpected default transport %T", http.DefaultTransport)
		}
		t = t.Clone()
		if _, err := http2.ConfigureTransports(t); err != nil {
			return nil, serrors.Wrap(serrors.ErrTransportSetup, err, "could not configure http2")
		}
		base = t
	}

	limit := opts.RedirectLimit

	return &Client{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(base,
				otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
					return "probe " + r.URL.Host
				}),
			),
			Timeout: opts.Timeout,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) > limit {
					return errTooManyRedirects
				}

				return nil
			},
		},
		userAgent: opts.UserAgent,
	}, nil
}

// Probe issues a GET against the provider URL for identifier and classifies
// the final status. Failures that cannot change on retry are marked with
// retry.Permanent.
func (c *Client) Probe(ctx context.Context, provider domain.Provider, identifier string) (domain.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.URL(identifier), nil)
	if err != nil {
		return "", retry.Permanent(serrors.Wrap(serrors.ErrTransport, err, "could not create request"))
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, errTooManyRedirects):
			return "", retry.Permanent(serrors.Wrap(serrors.ErrTransport, err, "could not follow redirects"))
		case ctx.Err() != nil:
			return "", retry.Permanent(serrors.Wrap(serrors.ErrTransport, err, "probe canceled"))
		default:
			return "", serrors.Wrap(serrors.ErrTransport, err, "could not send request")
		}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		_ = resp.Body.Close()
	}()

	return Classify(resp.StatusCode)
}

// Classify maps an HTTP status code to a probe outcome. Codes outside the
// 100-599 range produce a CLASSIFICATION error.
func Classify(status int) (domain.Outcome, error) {
	switch {
	case status < 100 || status > 599:
		return "", serrors.With(serrors.ErrClassification, "unexpected status code %d", status)
	case status >= 200 && status <= 399:
		return domain.OutcomeHit, nil
	case status == http.StatusTooManyRequests:
		return domain.OutcomeRateLimited, nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return domain.OutcomeRestricted, nil
	default:
		return domain.OutcomeMiss, nil
	}
}

