package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"collabcast/contract"
	"collabcast/observability"
)

var _ contract.Worker = (*SelfStatsWorker)(nil)

// SelfStatsWorker periodically logs process health (CPU, RAM, status)
// together with the pipeline counters.
type SelfStatsWorker struct {
	log        *slog.Logger
	interval   time.Duration
	monitoring *observability.MonitoringManager
}

func NewSelfStatsWorker(log *slog.Logger, interval time.Duration,
	monitoring *observability.MonitoringManager) *SelfStatsWorker {
	return &SelfStatsWorker{log: log, interval: interval, monitoring: monitoring}
}

func (w *SelfStatsWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			stats := w.monitoring.GetLatest()
			w.log.Info("node health",
				"pid", os.Getpid(),
				"pid_status", status,
				"cpu_percent", cpu,
				"ram_bytes", rss,
				"published", stats.PublishedEnvelopes,
				"transport_failures", stats.TransportFailures,
				"goroutines", stats.Goroutines,
			)
		}
	}
}

// selfStats retrieves technical metrics (Memory, CPU, and OS status) for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
