// Package application holds the ledger's use cases and the instrumentation
// they share.
package application

import "context"

// UseCase is a single ledger operation driven by an input value. Processors
// that expose a typed result implement it alongside their narrower methods.
type UseCase[In any, Out any] interface {
	Execute(ctx context.Context, in In) (Out, error)
}
