package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkamgno/ohada_ledger/internal/middleware"
)

// channelPrefix namespaces ledger events on the shared Redis instance.
const channelPrefix = "ledger."

// publishTimeout bounds how long a publish may hold up the caller.
const publishTimeout = 2 * time.Second

// RedisPublisher broadcasts events over Redis pub/sub.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher on an existing Redis client.
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

var _ Publisher = (*RedisPublisher)(nil)

// Publish serializes the event and publishes it on the topic channel.
// Failures are logged and swallowed.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal event", slog.String("topic", event.Topic), slog.String("error", err.Error()))
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.client.Publish(pubCtx, channelPrefix+event.Topic, payload).Err(); err != nil {
		logger.Error("Failed to publish event",
			slog.String("topic", event.Topic),
			slog.String("entry_id", event.EntryID),
			slog.String("error", err.Error()),
		)
		return
	}

	logger.Debug("Event published", slog.String("topic", event.Topic), slog.String("entry_id", event.EntryID))
}
