package inmemory

import "context"

// TxManager runs fn directly: every in-memory storage guards itself.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
