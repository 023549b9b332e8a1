// Package httpkit is the handler and routing surface modules use instead of the platform http package
package httpkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	phttp "github.com/predator4hack/gitscout/internal/platform/net/http"
)

type (
	// Router is the platform router seam
	Router = phttp.Router

	// Handler is the platform handler shape
	Handler = phttp.Handler

	// Response lets a handler choose its status
	Response = phttp.Response
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a body less handler
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.JSONHandlerNoBody(fn) }

// JSON adapts a handler taking a bound and validated T
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler { return phttp.JSONHandler(fn) }

// Param returns a path parameter of the matched route
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
