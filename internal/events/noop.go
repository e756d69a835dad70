package events

import "context"

// NoopPublisher discards all events. Used when no broker is configured
// and as a stand-in for tests.
type NoopPublisher struct{}

var _ Publisher = (*NoopPublisher)(nil)

func (NoopPublisher) Publish(ctx context.Context, event Event) {}
