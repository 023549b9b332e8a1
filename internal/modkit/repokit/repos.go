// Package repokit binds domain repositories to the store seams
package repokit

import (
	"context"

	"github.com/predator4hack/gitscout/internal/platform/store"
)

type (
	// Queryer is the surface a bound repo runs statements on
	Queryer = store.RowQuerier

	// TxRunner opens transactions
	TxRunner = store.TxRunner

	// Row is a single result row
	Row = store.Row

	// Rows is a result set
	Rows = store.Rows
)

// WithTx runs fn inside a transaction
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// InTx binds b inside a transaction and hands the repo to fn
func InTx[T any](ctx context.Context, tx TxRunner, b Binder[T], fn func(T) error) error {
	return tx.Tx(ctx, func(q Queryer) error { return fn(MustBind(b, q)) })
}

// ReadTx is InTx for calls that return a value
func ReadTx[T, R any](ctx context.Context, tx TxRunner, b Binder[T], fn func(T) (R, error)) (R, error) {
	var out R
	err := InTx(ctx, tx, b, func(repo T) error {
		var err error
		out, err = fn(repo)
		return err
	})
	return out, err
}
