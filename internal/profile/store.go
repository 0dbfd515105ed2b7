package profile

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a profile id has no record.
var ErrNotFound = errors.New("profile not found")

// Store persists compliance profiles. The verification orchestrator only
// reads; writes come from the dashboard CRUD surface.
type Store interface {
	ListAll(ctx context.Context) ([]Profile, error)
	Get(ctx context.Context, id string) (Profile, error)
	Create(ctx context.Context, p Profile) error
	Delete(ctx context.Context, id string) error
}
