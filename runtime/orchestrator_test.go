package runtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"collabcast/contract"
	"collabcast/domain"
	"collabcast/domain/event"
	"collabcast/observability"
	"collabcast/runtime/workers"
	"collabcast/transport"
)

func TestOrchestrator_DebugStats_Reflects_Published_Events(t *testing.T) {
	req := require.New(t)
	log := slog.Default()
	registry := NewRegistry()
	monitoring := observability.NewMonitoringManager(log)
	orchestrator := NewOrchestrator(
		log, workers.NewSupervisor(log), registry,
		[]contract.Transport{transport.NewHub(log, registry, 100*time.Millisecond)},
		monitoring, 1, 16, time.Minute, time.Second,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = orchestrator.Start(ctx) }()
	defer orchestrator.Stop()

	// Given nothing published yet, the page shows no totals
	stats := orchestrator.DebugStats()
	req.NotContains(stats, "Published "+string(event.MessageCreatedKind))
	req.Equal("", stats["Recent events"])

	// When a direct message goes through the pipeline
	orchestrator.Dispatch(event.MessageCreated{
		EventID:    uuid.New(),
		MessageID:  101,
		SenderID:   5,
		ReceiverID: 9,
		Body:       "hi",
		Sender:     domain.Profile{ID: 5, Name: "Alice"},
		At:         time.Now(),
	})

	// Then the per-kind total and the timeline tail both surface it
	req.Eventually(func() bool {
		total, ok := orchestrator.DebugStats()["Published "+string(event.MessageCreatedKind)].(uint64)
		return ok && total >= 1
	}, 2*time.Second, 20*time.Millisecond)
	req.Contains(orchestrator.DebugStats()["Recent events"], string(event.MessageCreatedKind))
}
