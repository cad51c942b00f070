// Package events delivers audit records and notifications after a transaction commits.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAudit        Kind = "audit"
	KindNotification Kind = "notification"
)

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionRestock AuditAction = "restock"
)

// AuditRecord captures one state change; Before and After are JSON snapshots.
type AuditRecord struct {
	Entity   string          `json:"entity"`
	EntityID uuid.UUID       `json:"entityId"`
	Action   AuditAction     `json:"action"`
	ActorID  uuid.UUID       `json:"actorId"`
	Before   json.RawMessage `json:"before,omitempty"`
	After    json.RawMessage `json:"after,omitempty"`
	At       time.Time       `json:"at"`
}

type NotificationType string

const (
	NotificationLowStock      NotificationType = "lowStock"
	NotificationFailedPayment NotificationType = "failedPayment"
)

type Notification struct {
	Type     NotificationType `json:"type"`
	EntityID uuid.UUID        `json:"entityId"`
	Message  string           `json:"message"`
	Data     map[string]any   `json:"data,omitempty"`
	At       time.Time        `json:"at"`
}

// Event is the unit handed to a Sink.
type Event struct {
	Kind Kind
	Key  string
	Body any
}

// Emitter is what services call after commit. Emission never fails the caller.
type Emitter interface {
	Audit(ctx context.Context, record AuditRecord)
	Notify(ctx context.Context, n Notification)
}

// Runner executes work off the caller's goroutine; false means the work was dropped.
type Runner interface {
	Go(ctx context.Context, name string, task func(ctx context.Context) error) bool
}

type Sink interface {
	Deliver(ctx context.Context, e Event) error
	Close() error
}

// Snapshot marshals v for an audit record, or returns nil when v cannot be encoded.
func Snapshot(v any) json.RawMessage {
	if v == nil {
		return nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}
