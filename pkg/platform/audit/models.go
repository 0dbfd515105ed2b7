package audit

import "time"

// Actions recorded in the trail. Verification decisions always use
// ActionProductVerify; the CRUD glue emits the rest.
const (
	ActionProductCreate = "product.create"
	ActionProductSubmit = "product.submit"
	ActionProductVerify = "product.verify"
	ActionProfileCreate = "profile.create"
	ActionProfileDelete = "profile.delete"
)

// SystemUser identifies events emitted by background processing rather than
// a dashboard user.
const SystemUser = "system"

// Event is emitted from domain logic to capture key actions. It is
// append-only and transport-agnostic so stores and sinks can fan out.
// Events are never mutated or deleted once appended.
type Event struct {
	ID        string            `json:"id"`
	Action    string            `json:"action"`
	EntityID  string            `json:"entityId"`
	UserID    string            `json:"userId"`
	Details   map[string]string `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
