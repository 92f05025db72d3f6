package httpclient

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Config holds settings for the HTTP client.
type Config struct {
	DialTimeout time.Duration
	Proxy       func(*http.Request) (*url.URL, error)
	Headers     http.Header
	UserAgent   string
	Insecure    bool
}

// headerRoundTripper wraps a base RoundTripper to inject shared headers and a
// default User-Agent into every outgoing request.
type headerRoundTripper struct {
	base      http.RoundTripper
	headers   http.Header
	userAgent string
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if h.base == nil {
		h.base = http.DefaultTransport
	}

	// Clone the request to avoid mutating the caller's copy
	r := req.Clone(req.Context())
	for k, vs := range h.headers {
		r.Header.Del(k)
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if h.userAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", h.userAgent)
	}
	return h.base.RoundTrip(r)
}

// New returns a configured HTTP client. No overall client timeout is set:
// callers pass per-request deadlines via context, which keeps probe and
// submit timeouts independent while sharing one client. Requests are never
// retried automatically; a failed check requires a new user action.
func New(cfg Config) *http.Client {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	transport := &http.Transport{
		Proxy:           cfg.Proxy,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure},
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}

	return &http.Client{
		Transport: &headerRoundTripper{
			base:      transport,
			headers:   cfg.Headers,
			userAgent: cfg.UserAgent,
		},
	}
}
