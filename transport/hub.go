// Package transport contains the broadcast transport adapters: the
// in-process hub used for local delivery and tests, and the Redis
// publisher used when fan-out is delegated to a managed pub/sub service.
package transport

import (
	"context"
	"log/slog"
	"time"

	"collabcast/contract"
	"collabcast/domain"
	"collabcast/domain/event"
)

var _ contract.Transport = (*Hub)(nil)

// Hub delivers envelopes to the subscribers registered on a channel.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. Hub is not a message broker.
//
// Hub is safe for concurrent use by multiple goroutines.
type Hub struct {
	log         *slog.Logger
	registry    contract.IRegistry
	sinkTimeout time.Duration
}

func NewHub(log *slog.Logger, registry contract.IRegistry, sinkTimeout time.Duration) *Hub {
	return &Hub{log: log, registry: registry, sinkTimeout: sinkTimeout}
}

// Publish hands the envelope to every live subscriber of the channel.
// A slow or failing subscriber loses the event; it never blocks the
// publisher past sinkTimeout or fails the publish as a whole.
func (h *Hub) Publish(ctx context.Context, channel domain.Channel, eventName string, payload event.Payload) error {
	env := event.Envelope{Event: eventName, Data: payload}

	for _, sink := range h.registry.Subscribers(channel) {
		sinkCtx, cancel := context.WithTimeout(ctx, h.sinkTimeout)
		if err := sink.Consume(sinkCtx, env); err != nil {
			h.log.Debug("subscriber missed event",
				"channel", channel.String(), "event", eventName, "error", err)
		}
		cancel()
	}
	return nil
}
