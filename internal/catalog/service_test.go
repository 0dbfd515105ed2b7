package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veripass/pkg/platform/audit"
	auditmemory "veripass/pkg/platform/audit/store/memory"
)

func newTestService() (*Service, *InMemoryStore, *auditmemory.Store) {
	store := NewInMemoryStore()
	sink := auditmemory.New()
	svc := NewService(store, audit.NewPublisher(sink), slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	return svc, store, sink
}

func TestService_CreateStartsNotSubmitted(t *testing.T) {
	svc, _, sink := newTestService()

	p, err := svc.Create(context.Background(), CreateRequest{
		Name:      "Solar Charger",
		Category:  "electronics",
		Materials: []Material{{Name: "Recycled Aluminium"}},
	}, "supplier-1")

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, StatusNotSubmitted, p.VerificationStatus)

	events := sink.All()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionProductCreate, events[0].Action)
	assert.Equal(t, "supplier-1", events[0].UserID)
	assert.Equal(t, p.ID, events[0].EntityID)
}

func TestService_SubmitMovesToPending(t *testing.T) {
	svc, store, sink := newTestService()
	p, err := svc.Create(context.Background(), CreateRequest{Name: "n", Category: "c"}, "supplier-1")
	require.NoError(t, err)

	require.NoError(t, svc.Submit(context.Background(), p.ID, "supplier-1"))

	got, err := store.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.VerificationStatus)

	events := sink.All()
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionProductSubmit, events[1].Action)
}

func TestService_SubmitRejectsNonNotSubmitted(t *testing.T) {
	svc, store, _ := newTestService()
	p, err := svc.Create(context.Background(), CreateRequest{Name: "n", Category: "c"}, "supplier-1")
	require.NoError(t, err)
	require.NoError(t, store.SetStatus(context.Background(), p.ID, StatusVerified))

	err = svc.Submit(context.Background(), p.ID, "supplier-1")

	var invalid ErrInvalidTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, StatusVerified, invalid.From)
}

func TestService_SubmitUnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Submit(context.Background(), "ghost", "supplier-1")

	assert.ErrorIs(t, err, ErrNotFound)
}
