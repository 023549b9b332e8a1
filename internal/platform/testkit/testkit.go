// Package testkit holds assertions and fakes shared by package tests
package testkit

import (
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"
)

// MustPanic fails unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain fails unless haystack contains needle
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, haystack)
	}
}

// MustNear fails unless got is within eps of want
func MustNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s = %.6f want %.6f (eps %.g)", name, got, want, eps)
	}
}

// MustEqualStrings compares two string slices element by element
func MustEqualStrings(t *testing.T, name string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len %d want %d\n got: %q\nwant: %q", name, len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%s[%d] = %q want %q\n got: %q\nwant: %q", name, i, got[i], want[i], got, want)
		}
	}
}

// Clock returns a now func pinned at t
func Clock(t time.Time) func() time.Time { return func() time.Time { return t } }

// Sleeps records requested sleeps without waiting
type Sleeps struct {
	mu sync.Mutex
	d  []time.Duration
}

// Sleep matches the retry and client sleep seams
func (s *Sleeps) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.d = append(s.d, d)
	s.mu.Unlock()
	return ctx.Err()
}

// All returns a copy of the recorded durations
func (s *Sleeps) All() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.d...)
}
