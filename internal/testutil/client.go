package testutil

import (
	"context"

	"github.com/memberly/memberly/internal/postgres"
)

// InMemoryClient satisfies postgres.IClient for tests running against the
// in-memory stores. WithTx just runs the function: the stores have no
// transaction semantics, so rollback behavior is exercised through errors.
type InMemoryClient struct{}

func NewInMemoryClient() *InMemoryClient {
	return &InMemoryClient{}
}

func (c *InMemoryClient) GetQuerier(ctx context.Context) postgres.Querier {
	return nil
}

func (c *InMemoryClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
