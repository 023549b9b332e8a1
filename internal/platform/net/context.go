// Package net carries request scoped values and the JSON envelope shared by transports
package net

import (
	"context"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const keyOwner ctxKey = "owner"

// OwnerHeader names the caller supplied owner of saved searches
const OwnerHeader = "X-Owner"

// WithRequest stores the request id where chimw.GetReqID finds it
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithOwner stores the owner of persisted searches; blank owners are ignored
func WithOwner(ctx context.Context, owner string) context.Context {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return ctx
	}
	return context.WithValue(ctx, keyOwner, owner)
}

// RequestID returns the request id or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Owner returns the owner or ""
func Owner(ctx context.Context) string {
	v, _ := ctx.Value(keyOwner).(string)
	return v
}
