package workers

import (
	"context"
	"log/slog"

	"collabcast/broadcast"
	"collabcast/contract"
	"collabcast/domain/event"
	"collabcast/observability"
)

var _ contract.Worker = (*PublisherWorker)(nil)

// PublisherWorker drains the domain event channel and pushes each event
// through the publish pipeline: build payload, resolve channels, hand to
// the transport(s). Each event is attempted exactly once.
//
// Transport failures are logged, counted and swallowed: the domain action
// that produced the event already committed, so delivery is best-effort
// by design of the notification path.
type PublisherWorker struct {
	log        *slog.Logger
	transports []contract.Transport
	events     chan event.DomainEvent
	telemetry  chan event.DomainEvent
	monitoring *observability.MonitoringManager
}

func NewPublisherWorker(
	log *slog.Logger,
	transports []contract.Transport,
	events, telemetry chan event.DomainEvent,
	monitoring *observability.MonitoringManager) *PublisherWorker {
	return &PublisherWorker{
		log:        log,
		transports: transports,
		events:     events,
		telemetry:  telemetry,
		monitoring: monitoring,
	}
}

func (w *PublisherWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping publisher")
			return nil
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed")
				return nil
			}
			w.publish(ctx, evt)

			select {
			case w.telemetry <- evt:
			default:
				w.log.Debug("Telemetry event lost")
			}
		}
	}
}

// publish runs one event through the pipeline. Malformed events were
// already validated at dispatch time, so a failure here means a bug in
// the producing service; it is counted and skipped rather than crashing
// the worker.
func (w *PublisherWorker) publish(ctx context.Context, evt event.DomainEvent) {
	name, payload, err := broadcast.Build(evt)
	if err != nil {
		w.monitoring.IncrMalformed()
		w.log.Error("Malformed event reached the publisher", "kind", evt.Kind(), "error", err)
		return
	}

	channels, err := broadcast.Resolve(evt)
	if err != nil {
		w.monitoring.IncrMalformed()
		w.log.Error("Unroutable event reached the publisher", "kind", evt.Kind(), "error", err)
		return
	}

	for _, channel := range channels {
		for _, transport := range w.transports {
			if err := transport.Publish(ctx, channel, name, payload); err != nil {
				w.monitoring.IncrTransportFailure()
				w.log.Warn("Publish failed, event lost for this transport",
					"channel", channel.String(), "event", name, "error", err)
				continue
			}
		}
		w.monitoring.IncrPublished(name)
	}
}
