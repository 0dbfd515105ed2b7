package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a product id has no record.
var ErrNotFound = errors.New("product not found")

// Store persists product passports. Swap with concrete storage without
// touching the services.
type Store interface {
	Create(ctx context.Context, p Product) error
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)

	// ListPending returns every product awaiting verification. Rows are
	// not locked; the orchestrator's later batch write is last-writer-wins.
	ListPending(ctx context.Context) ([]Product, error)

	// SetStatus moves a product to a new verification status, used for
	// supplier submission (NotSubmitted -> Pending).
	SetStatus(ctx context.Context, id string, status VerificationStatus) error

	// ApplyVerifications commits a batch of verification outcomes as one
	// atomic operation: either every update lands or none do.
	ApplyVerifications(ctx context.Context, updates []VerificationUpdate) error
}
