package event

import (
	"log/slog"
	"time"
)

// LatencyHandler measures the delay between a message being committed by
// the CRUD layer and its event reaching the telemetry pipeline.
type LatencyHandler struct {
	log              *slog.Logger
	latencyThreshold time.Duration
}

func NewLatencyHandler(log *slog.Logger, latencyThreshold time.Duration) *LatencyHandler {
	return &LatencyHandler{log: log, latencyThreshold: latencyThreshold}
}

func (h *LatencyHandler) Handle(e DomainEvent) {
	var at time.Time
	switch evt := e.(type) {
	case MessageCreated:
		at = evt.At
	case MessageDeleted:
		at = evt.At
	default:
		return
	}

	leadTime := time.Since(at)
	h.log.Info("telemetry: publish latency",
		"kind", e.Kind(),
		"lead_time_ms", leadTime.Milliseconds(),
	)

	if leadTime > h.latencyThreshold {
		h.log.Warn("high latency detected", "lead_time", leadTime)
	}
}
