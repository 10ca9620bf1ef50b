package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	envelopesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collabcast_envelopes_published_total",
		Help: "Envelopes handed to the broadcast transport, by event name.",
	}, []string{"event"})

	malformedEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collabcast_malformed_events_total",
		Help: "Domain events rejected before publish because a required field was missing.",
	})

	transportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collabcast_transport_failures_total",
		Help: "Publish calls that failed and were swallowed (best-effort delivery).",
	})

	subscriptionDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collabcast_subscription_decisions_total",
		Help: "Channel authorization outcomes.",
	}, []string{"decision"})
)
