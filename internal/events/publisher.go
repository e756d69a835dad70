package events

import (
	"context"
	"time"
)

// Topics published by the posting engine.
const (
	TopicEntryCreated   = "entry.created"
	TopicEntryValidated = "entry.validated"
	TopicEntryGenerated = "entry.generated"
)

// Event is the notification emitted after an entry state change is
// durably persisted. Consumers must treat it as informational only.
type Event struct {
	Topic      string    `json:"topic"`
	TenantID   string    `json:"tenantID"`
	EntryID    string    `json:"entryID"`
	Number     string    `json:"number"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher emits events after successful writes. Publishing is fire and
// forget: implementations log failures and never return them, so a broker
// outage cannot fail an accounting operation.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}
