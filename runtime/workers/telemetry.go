package workers

import (
	"context"
	"log/slog"

	"collabcast/contract"
	"collabcast/domain/event"
)

var _ contract.Worker = (*TelemetryWorker)(nil)

// TelemetryWorker feeds published events to the observability handlers
// (counters, latency tracking). It sits off the hot path: the publisher
// drops telemetry events instead of waiting for this worker.
type TelemetryWorker struct {
	log       *slog.Logger
	telemetry chan event.DomainEvent
	handlers  []event.Handler
}

func NewTelemetryWorker(log *slog.Logger,
	telemetry chan event.DomainEvent,
	handlers []event.Handler) *TelemetryWorker {
	return &TelemetryWorker{
		log:       log,
		telemetry: telemetry,
		handlers:  handlers,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt := <-w.telemetry:
			w.handle(evt)
		}
	}
}

func (w *TelemetryWorker) handle(e event.DomainEvent) {
	for _, h := range w.handlers {
		h.Handle(e)
	}
}
