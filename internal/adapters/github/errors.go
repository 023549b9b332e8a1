package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	perr "github.com/predator4hack/gitscout/internal/platform/errors"
)

// StatusError is a non 2xx response
type StatusError struct {
	Status  int
	Body    string
	Limited bool
	Wait    time.Duration
}

// Error implements error
func (e *StatusError) Error() string {
	if e.Limited {
		return fmt.Sprintf("github status %d: rate limited", e.Status)
	}
	return fmt.Sprintf("github status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

// HTTPStatus returns the response status
func (e *StatusError) HTTPStatus() int { return e.Status }

// RetryAfter is the wait GitHub asked for, zero when unknown
func (e *StatusError) RetryAfter() time.Duration { return e.Wait }

// GraphQLError is a non empty errors list in a GraphQL reply
type GraphQLError struct {
	Errors []GraphQLErrorItem
}

// GraphQLErrorItem is one GraphQL error
type GraphQLErrorItem struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Error implements error
func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, it := range e.Errors {
		msgs = append(msgs, it.Message)
	}
	return "github graphql: " + strings.Join(msgs, "; ")
}

// RateLimited reports a GraphQL level rate limit
func (e *GraphQLError) RateLimited() bool {
	for _, it := range e.Errors {
		if it.Type == "RATE_LIMITED" {
			return true
		}
	}
	return false
}

// IsRetryable classifies errors from a single attempt
// timeouts, dropped connections, truncated JSON, 5xx gateways, rate limits and coded transient errors retry
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if perr.Retryable(err) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		if se.Limited {
			return true
		}
		switch se.Status {
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	var ge *GraphQLError
	if errors.As(err, &ge) {
		return ge.RateLimited()
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return true
	}
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

// IsRateLimited reports whether err is a rate limit response
func IsRateLimited(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Limited
	}
	var ge *GraphQLError
	return errors.As(err, &ge) && ge.RateLimited()
}

// IsNotFound reports a 404
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

// classify maps the final error onto perr codes, keeping the cause
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	var se *StatusError
	var ge *GraphQLError
	switch {
	case IsRateLimited(err):
		return perr.Wrap(err, perr.ErrorCodeTooManyRequests, "github rate limited")
	case errors.As(err, &se):
		switch {
		case se.Status == http.StatusNotFound:
			return perr.Wrap(err, perr.ErrorCodeNotFound, "github resource not found")
		case se.Status >= 500:
			return perr.Wrap(err, perr.ErrorCodeUnavailable, "github unavailable")
		default:
			return perr.Wrapf(err, perr.ErrorCodeUpstream, "github rejected request with %d", se.Status)
		}
	case errors.As(err, &ge):
		return perr.Wrap(err, perr.ErrorCodeUpstream, "github graphql errors")
	case IsRetryable(err):
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "github transport error")
	}
	return perr.Wrap(err, perr.ErrorCodeUpstream, "github call failed")
}

func parseRateHeaders(h http.Header) (remaining int, reset time.Time, retryAfter int) {
	remaining = -1
	if v := h.Get("X-RateLimit-Remaining"); v != "" {
		remaining = atoi(v)
	}
	if sec := atoi(h.Get("X-RateLimit-Reset")); sec > 0 {
		reset = time.Unix(int64(sec), 0).UTC()
	}
	retryAfter = atoi(h.Get("Retry-After"))
	return
}

// isRateLimitStatus separates rate limits from plain 403 Forbidden
func isRateLimitStatus(status, remaining, retryAfter int, body string) bool {
	switch status {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		if remaining == 0 || retryAfter > 0 {
			return true
		}
		return strings.Contains(strings.ToLower(body), "rate limit")
	}
	return false
}

// computeWait prefers Retry-After, then the reset time of an exhausted bucket
func computeWait(remaining int, reset time.Time, retryAfter int, now time.Time) time.Duration {
	if retryAfter > 0 {
		return time.Duration(retryAfter) * time.Second
	}
	if remaining == 0 && !reset.IsZero() && reset.After(now) {
		return reset.Sub(now)
	}
	return 0
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	i, _ := strconv.Atoi(strings.TrimSpace(s))
	return i
}
