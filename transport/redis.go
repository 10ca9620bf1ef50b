package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"collabcast/contract"
	"collabcast/domain"
	"collabcast/domain/event"
	apperrors "collabcast/errors"
)

var _ contract.Transport = (*RedisTransport)(nil)

// RedisTransport publishes envelopes with PUBLISH <channel> <json>.
// Subscription-side fan-out then belongs to Redis and whatever bridges
// it to clients; this adapter only covers the outward publish call.
type RedisTransport struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRedisTransport(ctx context.Context, redisURL string, log *slog.Logger) (*RedisTransport, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisTransport{client: client, log: log}, nil
}

func (t *RedisTransport) Close() error {
	return t.client.Close()
}

func (t *RedisTransport) Publish(ctx context.Context, channel domain.Channel, eventName string, payload event.Payload) error {
	env := event.Envelope{Event: eventName, Data: payload}
	bytes, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransportFailure, err)
	}

	if err := t.client.Publish(ctx, channel.String(), bytes).Err(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrTransportFailure, err)
	}
	return nil
}
