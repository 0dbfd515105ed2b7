//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veripass/pkg/platform/audit"
	auditpostgres "veripass/pkg/platform/audit/store/postgres"
	"veripass/pkg/testutil/containers"
)

func TestStore_AppendWritesEventAndOutbox(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := auditpostgres.New(pg.DB)
	ctx := context.Background()

	event := audit.Event{
		ID:        uuid.NewString(),
		Action:    audit.ActionProductVerify,
		EntityID:  "p1",
		UserID:    audit.SystemUser,
		Details:   map[string]string{"status": "Verified"},
		Timestamp: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, store.Append(ctx, event))

	events, err := store.ListByEntity(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)
	assert.Equal(t, audit.ActionProductVerify, events[0].Action)
	assert.Equal(t, "Verified", events[0].Details["status"])
	assert.True(t, events[0].Timestamp.Equal(event.Timestamp))

	entries, err := store.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionProductVerify, entries[0].EventType)
	assert.NotEmpty(t, entries[0].Payload)
}

func TestStore_ListByEntityOrdersByTime(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := auditpostgres.New(pg.DB)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, action := range []string{audit.ActionProductCreate, audit.ActionProductSubmit, audit.ActionProductVerify} {
		require.NoError(t, store.Append(ctx, audit.Event{
			ID:        uuid.NewString(),
			Action:    action,
			EntityID:  "p1",
			UserID:    "supplier-1",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	events, err := store.ListByEntity(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, audit.ActionProductCreate, events[0].Action)
	assert.Equal(t, audit.ActionProductSubmit, events[1].Action)
	assert.Equal(t, audit.ActionProductVerify, events[2].Action)
}

func TestStore_MarkPublishedDrainsOutbox(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	store := auditpostgres.New(pg.DB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, audit.Event{
			ID:        uuid.NewString(),
			Action:    audit.ActionProductVerify,
			EntityID:  "p1",
			UserID:    audit.SystemUser,
			Timestamp: time.Now().UTC(),
		}))
	}

	entries, err := store.ListUnpublished(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2, "limit must cap the batch")

	ids := []uuid.UUID{entries[0].ID, entries[1].ID}
	require.NoError(t, store.MarkPublished(ctx, ids))

	remaining, err := store.ListUnpublished(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)

	require.NoError(t, store.MarkPublished(ctx, nil))
}
