// Package github is a GitHub REST and GraphQL client for candidate discovery
//
// Every call is paced by a token bucket, rotates through the configured tokens and
// retries transient failures through core/retry. Errors that survive the retry budget
// come back as perr values: TooManyRequests, Unavailable, Upstream or NotFound.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/predator4hack/gitscout/internal/core/retry"
	perr "github.com/predator4hack/gitscout/internal/platform/errors"
	"github.com/predator4hack/gitscout/internal/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURLDefault   = "https://api.github.com"
	defaultTimeout   = 30 * time.Second
	defaultUA        = "gitscout"
	defaultMaxRetry  = 3
	defaultRetryBase = 500 * time.Millisecond
	defaultRate      = 10
	maxBody          = 4 << 20
)

// Options configures the Client
type Options struct {
	BaseURL    string
	GraphQLURL string // defaults to BaseURL + /graphql
	UserAgent  string
	Timeout    time.Duration

	// Comma separated tokens; empty means anonymous, which only suits tests
	TokensCSV string

	MaxRetries int
	RetryBase  time.Duration

	// outbound pacing per client
	RatePerSec float64
	Burst      int
}

// Client talks to api.github.com
type Client struct {
	http    *http.Client
	opts    Options
	tokens  []string
	cur     atomic.Int32
	limiter *rate.Limiter
	log     logger.Logger
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client with defaults filled in
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.GraphQLURL == "" {
		o.GraphQLURL = o.BaseURL + "/graphql"
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.RatePerSec <= 0 {
		o.RatePerSec = defaultRate
	}
	if o.Burst <= 0 {
		o.Burst = max(1, int(o.RatePerSec))
	}
	var toks []string
	for t := range strings.SplitSeq(o.TokensCSV, ",") {
		if t = strings.TrimSpace(t); t != "" {
			toks = append(toks, t)
		}
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		tokens:  toks,
		limiter: rate.NewLimiter(rate.Limit(o.RatePerSec), o.Burst),
		log:     *logger.Named("github"),
		now:     time.Now,
	}
}

// Tokens reports how many tokens are in rotation
func (c *Client) Tokens() int { return len(c.tokens) }

// nextToken returns the next token in round robin order
func (c *Client) nextToken() string {
	n := int(c.cur.Add(1))
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens[n%len(c.tokens)]
}

// Response is a fully read 2xx response
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Do issues a REST request against BaseURL with retries
// body is JSON encoded when not nil
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "github encode body")
		}
		payload = b
	}
	var out *Response
	err := c.call(ctx, method, c.url(path), payload, func(r *Response) error {
		out = r
		return nil
	})
	return out, err
}

// getJSON fetches path and decodes the body into out inside the retry loop
// so truncated bodies are retried too
func (c *Client) getJSON(ctx context.Context, path string, out any) (int, error) {
	status := 0
	err := c.call(ctx, http.MethodGet, c.url(path), nil, func(r *Response) error {
		status = r.Status
		if r.Status == http.StatusNoContent || len(bytes.TrimSpace(r.Body)) == 0 {
			return nil
		}
		return json.Unmarshal(r.Body, out)
	})
	return status, err
}

func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.opts.BaseURL + path
}

// call runs one request plus decode under the retry policy
func (c *Client) call(ctx context.Context, method, url string, body []byte, decode func(*Response) error) error {
	err := retry.Do(ctx, func(ctx context.Context) error {
		resp, err := c.once(ctx, method, url, body)
		if err != nil {
			return err
		}
		return decode(resp)
	}, IsRetryable, c.policy(method, url))
	return classify(err)
}

func (c *Client) policy(method, url string) retry.Policy {
	p := retry.Default()
	p.MaxRetries = c.opts.MaxRetries
	p.Base = c.opts.RetryBase
	p.Sleep = c.sleep
	p.OnRetry = func(attempt int, wait time.Duration, err error) {
		c.log.Warn().
			Err(err).
			Str("method", method).
			Str("url", url).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("github call failed, retrying")
	}
	return p
}

// once performs a single paced request; non 2xx statuses become *StatusError
func (c *Client) once(ctx context.Context, method, url string, body []byte) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "github new request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.nextToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	rem, reset, retryAfter := parseRateHeaders(resp.Header)
	c.log.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("latency", c.now().Sub(start)).
		Int("rate_remaining", rem).
		Time("rate_reset", reset).
		Msg("github http response")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			return nil, err
		}
		return &Response{Status: resp.StatusCode, Header: resp.Header, Body: b}, nil
	}

	tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	se := &StatusError{Status: resp.StatusCode, Body: string(tail)}
	if isRateLimitStatus(resp.StatusCode, rem, retryAfter, se.Body) {
		se.Limited = true
		se.Wait = computeWait(rem, reset, retryAfter, c.now())
	}
	return nil, se
}
