package observability

import (
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"
)

// MonitoringStats aggregates pipeline counters for the stats page.
type MonitoringStats struct {
	PublishedEnvelopes   uint64 `json:"published_envelopes"`
	MalformedEvents      uint64 `json:"malformed_events"`
	TransportFailures    uint64 `json:"transport_failures"`
	DroppedEvents        uint64 `json:"dropped_events"`
	AllowedSubscriptions uint64 `json:"allowed_subscriptions"`
	DeniedSubscriptions  uint64 `json:"denied_subscriptions"`

	AllocMemMb uint64 `json:"alloc_mem_mb"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`
}

// MonitoringManager owns the realtime counters of the notification path.
// All increments are atomic; it is shared by the HTTP layer and the
// publish workers.
type MonitoringManager struct {
	log       *slog.Logger
	LastCheck time.Time

	publishedEnvelopes   uint64
	malformedEvents      uint64
	transportFailures    uint64
	droppedEvents        uint64
	allowedSubscriptions uint64
	deniedSubscriptions  uint64
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, LastCheck: time.Now()}
}

func (mm *MonitoringManager) IncrPublished(eventName string) {
	atomic.AddUint64(&mm.publishedEnvelopes, 1)
	envelopesPublished.WithLabelValues(eventName).Inc()
}

func (mm *MonitoringManager) IncrMalformed() {
	atomic.AddUint64(&mm.malformedEvents, 1)
	malformedEvents.Inc()
}

func (mm *MonitoringManager) IncrTransportFailure() {
	atomic.AddUint64(&mm.transportFailures, 1)
	transportFailures.Inc()
}

func (mm *MonitoringManager) IncrDropped() {
	atomic.AddUint64(&mm.droppedEvents, 1)
}

func (mm *MonitoringManager) IncrAllowed() {
	atomic.AddUint64(&mm.allowedSubscriptions, 1)
	subscriptionDecisions.WithLabelValues("allow").Inc()
}

func (mm *MonitoringManager) IncrDenied() {
	atomic.AddUint64(&mm.deniedSubscriptions, 1)
	subscriptionDecisions.WithLabelValues("deny").Inc()
}

// GetLatest snapshots the counters together with basic Go runtime stats.
func (mm *MonitoringManager) GetLatest() MonitoringStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return MonitoringStats{
		PublishedEnvelopes:   atomic.LoadUint64(&mm.publishedEnvelopes),
		MalformedEvents:      atomic.LoadUint64(&mm.malformedEvents),
		TransportFailures:    atomic.LoadUint64(&mm.transportFailures),
		DroppedEvents:        atomic.LoadUint64(&mm.droppedEvents),
		AllowedSubscriptions: atomic.LoadUint64(&mm.allowedSubscriptions),
		DeniedSubscriptions:  atomic.LoadUint64(&mm.deniedSubscriptions),
		AllocMemMb:           mem.Alloc / 1024 / 1024,
		NumGC:                mem.NumGC,
		Goroutines:           runtime.NumGoroutine(),
	}
}

// StatsProvider feeds the debug inspector dashboard.
func (mm *MonitoringManager) StatsProvider() map[string]any {
	stats := mm.GetLatest()
	return map[string]any{
		"Published":          stats.PublishedEnvelopes,
		"Malformed":          stats.MalformedEvents,
		"Transport failures": stats.TransportFailures,
		"Dropped":            stats.DroppedEvents,
		"Subs allowed":       stats.AllowedSubscriptions,
		"Subs denied":        stats.DeniedSubscriptions,
		"Alloc MB":           stats.AllocMemMb,
		"Goroutines":         stats.Goroutines,
	}
}
