//go:build integration

package profile_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veripass/internal/profile"
	"veripass/pkg/testutil/containers"
)

func TestCachedStore_ReadThroughAndInvalidation(t *testing.T) {
	rd := containers.NewRedisContainer(t)
	inner := profile.NewInMemoryStore()
	cached := profile.NewCachedStore(inner, rd.Client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	p := profile.Profile{
		ID:        "pr1",
		Name:      "electronics path",
		Category:  "electronics",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, cached.Create(ctx, p))

	// First read populates the cache.
	first, err := cached.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses the decorator is invisible until invalidation.
	require.NoError(t, inner.Create(ctx, profile.Profile{ID: "pr2", Name: "hidden", Category: "textiles"}))
	stale, err := cached.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	// Writes through the decorator invalidate, so the next read is fresh.
	require.NoError(t, cached.Create(ctx, profile.Profile{ID: "pr3", Name: "visible", Category: "furniture"}))
	fresh, err := cached.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)

	require.NoError(t, cached.Delete(ctx, "pr3"))
	afterDelete, err := cached.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, afterDelete, 2)
}
