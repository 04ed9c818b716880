// Package backend is the HTTP client for the loyalty platform's backend of
// record. Every call returns the raw body of a successful envelope; callers
// hand it to the normalize package.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Cheertaboi/maxreward-console/internal/metrics"
	"github.com/Cheertaboi/maxreward-console/internal/normalize"
)

const (
	GenericMessage = "Something went wrong"
	maxBodyBytes   = 10 << 20
)

// Error is a failure reported by the backend, either through a non-2xx status
// or an envelope with success=false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Message)
}

// MessageOf returns the message to show for err: the backend's own message
// when there is one, GenericMessage otherwise.
func MessageOf(err error) string {
	var be *Error
	if errors.As(err, &be) && be.Message != "" {
		return be.Message
	}
	return GenericMessage
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// RPS caps outbound requests; zero means unlimited.
	RPS   float64
	Burst int
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	log     logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = l }
}

func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method      string
	path        string
	endpoint    string // metrics label
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path, endpoint string, payload interface{}) (request, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s: %w", endpoint, err)
	}
	return request{
		method:      method,
		path:        path,
		endpoint:    endpoint,
		body:        bytes.NewReader(b),
		contentType: "application/json",
	}, nil
}

// do sends r and returns the body of a successful envelope.
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", r.endpoint, err)
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordUpstream(r.endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("%s: %w", r.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RecordUpstream(r.endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("read %s response: %w", r.endpoint, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		metrics.RecordUpstream(r.endpoint, "rejected", time.Since(start))
		msg := normalize.Message(body)
		if msg == "" {
			msg = GenericMessage
		}
		c.log.WithFields(logrus.Fields{
			"endpoint": r.endpoint,
			"status":   resp.StatusCode,
		}).Warn("backend returned error status")
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	env, err := normalize.DecodeEnvelope(body)
	if err != nil {
		metrics.RecordUpstream(r.endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("decode %s response: %w", r.endpoint, err)
	}
	if !env.Success {
		metrics.RecordUpstream(r.endpoint, "rejected", time.Since(start))
		msg := env.Message
		if msg == "" {
			msg = GenericMessage
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}

	metrics.RecordUpstream(r.endpoint, "ok", time.Since(start))
	return body, nil
}

// data returns the data member of a successful envelope body.
func data(body []byte) json.RawMessage {
	env, err := normalize.DecodeEnvelope(body)
	if err != nil {
		return nil
	}
	return env.Data
}
