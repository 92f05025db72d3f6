package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/truthlayerai-dev/truthlayer-cli/internal/model"
	"github.com/truthlayerai-dev/truthlayer-cli/internal/trace"
)

// Sentinel failure classes. Callers distinguish them with errors.Is to show
// different messages for an elapsed deadline versus a connection that never
// produced a response.
var (
	ErrTimeout = errors.New("request timed out")
	ErrNetwork = errors.New("network failure")
)

const (
	// DefaultProbeTimeout guards the connectivity probe.
	DefaultProbeTimeout = 8 * time.Second
	// DefaultSubmitTimeout guards a check submission.
	DefaultSubmitTimeout = 20 * time.Second
	// DefaultCheckPath is the check endpoint under the service base URL.
	DefaultCheckPath = "/api/check"

	maxBodyBytes = 64 * 1024
)

// Config holds settings for the service client.
type Config struct {
	BaseURL       string
	CheckPath     string
	ProbeTimeout  time.Duration
	SubmitTimeout time.Duration
	HTTPClient    *http.Client
	Recorder      *trace.Recorder
}

// ProbeResult reports service reachability. Err is nil whenever any HTTP
// response arrived, regardless of status.
type ProbeResult struct {
	Reachable  bool
	StatusCode int
	Body       string
	Err        error
}

// SubmitResult carries the raw and parsed response of a check submission.
// A body that fails to parse as JSON is not an error at this layer: Payload
// stays nil, ParseErr records the failure, and RawBody keeps the text so the
// caller can always branch on structured data.
type SubmitResult struct {
	StatusCode int
	RawBody    string
	Payload    *model.CheckPayload
	ParseErr   error
	Duration   time.Duration
}

// Client talks to the TruthLayer verification service.
type Client struct {
	base          string
	checkPath     string
	probeTimeout  time.Duration
	submitTimeout time.Duration
	http          *http.Client
	rec           *trace.Recorder
}

// New creates a service client, filling unset fields with defaults.
func New(cfg Config) *Client {
	c := &Client{
		base:          strings.TrimRight(cfg.BaseURL, "/"),
		checkPath:     cfg.CheckPath,
		probeTimeout:  cfg.ProbeTimeout,
		submitTimeout: cfg.SubmitTimeout,
		http:          cfg.HTTPClient,
		rec:           cfg.Recorder,
	}
	if c.checkPath == "" {
		c.checkPath = DefaultCheckPath
	}
	if c.probeTimeout <= 0 {
		c.probeTimeout = DefaultProbeTimeout
	}
	if c.submitTimeout <= 0 {
		c.submitTimeout = DefaultSubmitTimeout
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	return c
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string { return c.base }

// Probe issues a GET against the service root under the probe timeout. It
// never panics and never returns transport errors through a second channel:
// failures land in the result's Err field, already classified.
func (c *Client) Probe(ctx context.Context) ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	target := c.base + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ProbeResult{Err: fmt.Errorf("build probe request: %w", err)}
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cerr := classify(err)
		c.record(http.MethodGet, target, 0, time.Since(start), "", cerr)
		return ProbeResult{Err: cerr}
	}
	defer resp.Body.Close()

	body := readBounded(resp.Body)
	c.record(http.MethodGet, target, resp.StatusCode, time.Since(start), body, nil)
	return ProbeResult{Reachable: true, StatusCode: resp.StatusCode, Body: body}
}

// Submit POSTs the claim request as JSON to the check endpoint under the
// submit timeout. The returned error is non-nil only for transport-level
// failures (wrapped ErrTimeout or ErrNetwork); any received response yields
// a SubmitResult instead.
func (c *Client) Submit(ctx context.Context, cr model.ClaimRequest) (SubmitResult, error) {
	payload, err := json.Marshal(cr)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("encode claim request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.submitTimeout)
	defer cancel()

	target := c.base + c.checkPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return SubmitResult{}, fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cerr := classify(err)
		c.record(http.MethodPost, target, 0, time.Since(start), "", cerr)
		return SubmitResult{Duration: time.Since(start)}, cerr
	}
	defer resp.Body.Close()

	raw := readBounded(resp.Body)
	res := SubmitResult{
		StatusCode: resp.StatusCode,
		RawBody:    raw,
		Duration:   time.Since(start),
	}
	var parsed model.CheckPayload
	if perr := json.Unmarshal([]byte(raw), &parsed); perr != nil {
		res.ParseErr = perr
	} else {
		res.Payload = &parsed
	}
	c.record(http.MethodPost, target, resp.StatusCode, res.Duration, raw, nil)
	return res, nil
}

func (c *Client) record(method, url string, status int, d time.Duration, body string, err error) {
	if c.rec == nil {
		return
	}
	c.rec.Record(method, url, status, d, body, err)
}

// classify maps a transport failure onto ErrTimeout or ErrNetwork while
// keeping the original error in the chain.
func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}

func readBounded(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	return string(b)
}
