package services

import (
	"context"
	"log/slog"

	"collabcast/auth"
	"collabcast/contract"
	"collabcast/domain"
	"collabcast/observability"
)

type ISubscriptionService interface {
	Authorize(ctx context.Context, user domain.User, channelName string) domain.Decision
}

// SubscriptionService runs the subscription handshake: validate the
// request shape, parse the channel name, ask the gate. Every failure
// path is a clean Deny; the HTTP layer maps Deny to 403.
type SubscriptionService struct {
	log        *slog.Logger
	gate       contract.AuthorizationGate
	monitoring *observability.MonitoringManager
}

func NewSubscriptionService(log *slog.Logger, gate contract.AuthorizationGate,
	monitoring *observability.MonitoringManager) *SubscriptionService {
	return &SubscriptionService{log: log, gate: gate, monitoring: monitoring}
}

func (s *SubscriptionService) Authorize(ctx context.Context, user domain.User, channelName string) domain.Decision {
	if err := auth.ValidateSubscribe(auth.SubscribeRequest{ChannelName: channelName}); err != nil {
		s.monitoring.IncrDenied()
		s.log.Debug("subscription request rejected", "channel", channelName, "error", err)
		return domain.Deny()
	}

	channel, err := domain.ParseChannel(channelName)
	if err != nil {
		s.monitoring.IncrDenied()
		s.log.Debug("unknown channel refused", "channel", channelName, "user_id", user.ID)
		return domain.Deny()
	}

	decision := s.gate.Authorize(ctx, user, channel)
	if decision.Allowed {
		s.monitoring.IncrAllowed()
	} else {
		s.monitoring.IncrDenied()
	}
	return decision
}
