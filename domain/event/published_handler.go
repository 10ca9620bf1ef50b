package event

import (
	"log/slog"
)

// PublishedHandler counts events that went through the publish pipeline.
// It is triggered after the publisher worker attempted delivery.
// Useful for updating observability metrics, logging, or telemetry.
type PublishedHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewPublishedHandler(log *slog.Logger, counter *Counter) *PublishedHandler {
	return &PublishedHandler{log: log, counter: counter}
}

func (h *PublishedHandler) Handle(e DomainEvent) {
	h.counter.Increment(e.Kind())
}
