package testutil

import (
	"context"

	"github.com/memberly/memberly/internal/types"
)

// SetupContext returns a context carrying the default tenant and user, the
// way the request middleware would populate it.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, types.DefaultTenantID)
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	return ctx
}
