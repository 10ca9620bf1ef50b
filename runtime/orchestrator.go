// Package runtime handles event dispatch, supervision and fan-out.
// It orchestrates the notification path without containing domain rules:
// payload shapes and channel policy live in broadcast, authorization in
// authz.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"collabcast/contract"
	"collabcast/domain/event"
	"collabcast/observability"
	"collabcast/projection"
	"collabcast/runtime/workers"
)

// timelineRetention bounds the recent-events read model fed to the
// debug inspector; recentShown is how much of it one stats page shows.
const (
	timelineRetention = 100
	recentShown       = 10
)

type Orchestrator struct {
	mu            sync.Mutex
	log           *slog.Logger
	numWorkers    int
	supervisor    contract.ISupervisor
	registry      contract.IRegistry
	transports    []contract.Transport
	events        chan event.DomainEvent
	telemetry     chan event.DomainEvent
	monitoring    *observability.MonitoringManager
	counter       *event.Counter
	timeline      *projection.Timeline
	statsInterval time.Duration
	latencyLimit  time.Duration
}

func NewOrchestrator(log *slog.Logger, supervisor *workers.Supervisor,
	registry contract.IRegistry, transports []contract.Transport,
	monitoring *observability.MonitoringManager,
	numWorkers, bufferSize int, statsInterval, latencyLimit time.Duration) *Orchestrator {
	return &Orchestrator{
		log:           log,
		numWorkers:    numWorkers,
		supervisor:    supervisor,
		registry:      registry,
		transports:    transports,
		events:        make(chan event.DomainEvent, bufferSize),
		telemetry:     make(chan event.DomainEvent, bufferSize),
		monitoring:    monitoring,
		counter:       event.NewCounter(),
		timeline:      projection.NewTimeline(timelineRetention),
		statsInterval: statsInterval,
		latencyLimit:  latencyLimit,
	}
}

// Dispatch enqueues an event for its single publish attempt. A full
// queue drops the event with a warning rather than blocking the HTTP
// worker that committed the domain action.
func (o *Orchestrator) Dispatch(evt event.DomainEvent) {
	select {
	case o.events <- evt:
	default:
		o.monitoring.IncrDropped()
		o.log.Warn("Event queue full, dropping event", "kind", evt.Kind())
	}
}

// Registry exposes the local subscription registry to the HTTP layer.
func (o *Orchestrator) Registry() contract.IRegistry {
	return o.registry
}

// DebugStats feeds the inspector dashboard with per-kind publish totals
// and the tail of the publication timeline.
func (o *Orchestrator) DebugStats() map[string]any {
	stats := make(map[string]any)
	for kind, total := range o.counter.Snapshot() {
		stats["Published "+string(kind)] = total
	}

	recent := o.timeline.Recent()
	if len(recent) > recentShown {
		recent = recent[len(recent)-recentShown:]
	}
	lines := lo.Map(recent, func(e projection.Entry, _ int) string {
		return fmt.Sprintf("%s %s", e.At.UTC().Format("15:04:05.000"), e.Kind)
	})
	stats["Recent events"] = strings.Join(lines, " | ")
	return stats
}

// Start prepares all workers and hands them to the supervisor. It blocks
// until the supervision context ends; callers run it in a goroutine.
func (o *Orchestrator) Start(ctx context.Context) error {
	// Preparation phase, no lock: workers only capture channels that
	// already exist.
	publishers := o.preparePublishers()
	telemetryWorker := o.prepareTelemetry()
	statsWorker := workers.NewSelfStatsWorker(o.log, o.statsInterval, o.monitoring)

	o.mu.Lock()
	o.supervisor.Add(telemetryWorker)
	o.supervisor.Add(statsWorker)
	for _, w := range publishers {
		o.supervisor.Add(w)
	}
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers",
		"publishers", o.numWorkers, "transports", len(o.transports))
	o.supervisor.Run(ctx)
	return nil
}

func (o *Orchestrator) preparePublishers() []contract.Worker {
	var res []contract.Worker
	for i := 0; i < o.numWorkers; i++ {
		res = append(res, workers.NewPublisherWorker(o.log, o.transports, o.events, o.telemetry, o.monitoring))
	}
	return res
}

func (o *Orchestrator) prepareTelemetry() contract.Worker {
	handlers := []event.Handler{
		event.NewPublishedHandler(o.log, o.counter),
		event.NewLatencyHandler(o.log, o.latencyLimit),
		o.timeline,
	}
	return workers.NewTelemetryWorker(o.log, o.telemetry, handlers)
}

// Stop initiates a graceful shutdown: cancel the supervision context so
// every worker unblocks and returns.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
