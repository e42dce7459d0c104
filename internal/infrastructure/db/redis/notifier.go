package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Notifier publishes domain events to Redis pub/sub. Channel naming is
// "<topic>.<routingKey>", payloads are JSON. Subscribers are out of
// scope; delivery is whatever pub/sub gives us.
type Notifier struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewNotifier(client *redis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

// Publish sends one event. The error is advisory; callers treat publish
// as fire-and-forget.
func (n *Notifier) Publish(ctx context.Context, topic, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("publish: marshal: %w", err)
	}

	channel := fmt.Sprintf("%s.%s", topic, routingKey)
	if err := n.client.Publish(ctx, channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}

	n.log.Debug().Str("channel", channel).Msg("event published")
	return nil
}
