package audit

import "context"

// Store persists audit events. Append-only: implementations must never
// update or delete rows.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, entityID string) ([]Event, error)
}
