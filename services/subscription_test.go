package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"collabcast/domain"
	"collabcast/mocks"
	"collabcast/observability"
)

func TestSubscriptionService_Authorize_PublicChannel(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given an authenticated user asking for the public channel
	gate := mocks.NewMockAuthorizationGate(ctrl)
	service := NewSubscriptionService(slog.Default(), gate, observability.NewMonitoringManager(slog.Default()))
	user := domain.User{ID: 5, Name: "Alice"}
	gate.EXPECT().
		Authorize(gomock.Any(), user, domain.Public("chat")).
		Return(domain.Allow())

	// When authorizing
	decision := service.Authorize(context.Background(), user, "chat")

	// Then access is granted
	req.True(decision.Allowed)
}

func TestSubscriptionService_Authorize_PresenceChannelReturnsProfile(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	gate := mocks.NewMockAuthorizationGate(ctrl)
	service := NewSubscriptionService(slog.Default(), gate, observability.NewMonitoringManager(slog.Default()))
	user := domain.User{ID: 5, Name: "Alice"}
	profile := domain.Profile{ID: 5, Name: "Alice", Avatar: "a.png"}
	gate.EXPECT().
		Authorize(gomock.Any(), user, domain.PresenceGroup(3)).
		Return(domain.AllowWithProfile(profile))

	decision := service.Authorize(context.Background(), user, "group.3")

	req.True(decision.Allowed)
	req.NotNil(decision.Profile)
	req.Equal(profile, *decision.Profile)
}

func TestSubscriptionService_Authorize_UnknownChannelNeverReachesGate(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given a channel name outside the known namespaces
	gate := mocks.NewMockAuthorizationGate(ctrl)
	service := NewSubscriptionService(slog.Default(), gate, observability.NewMonitoringManager(slog.Default()))

	// When authorizing (the gate must not be consulted)
	decision := service.Authorize(context.Background(), domain.User{ID: 5}, "admin.secrets")

	// Then access is denied
	req.False(decision.Allowed)
}

func TestSubscriptionService_Authorize_EmptyChannelIsDenied(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	gate := mocks.NewMockAuthorizationGate(ctrl)
	service := NewSubscriptionService(slog.Default(), gate, observability.NewMonitoringManager(slog.Default()))

	decision := service.Authorize(context.Background(), domain.User{ID: 5}, "")

	req.False(decision.Allowed)
}

func TestSubscriptionService_Authorize_GateDenialIsPropagated(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given a user asking for someone else's private channel
	gate := mocks.NewMockAuthorizationGate(ctrl)
	service := NewSubscriptionService(slog.Default(), gate, observability.NewMonitoringManager(slog.Default()))
	user := domain.User{ID: 5, Name: "Alice"}
	gate.EXPECT().
		Authorize(gomock.Any(), user, domain.PrivateUser(9)).
		Return(domain.Deny())

	// When authorizing
	decision := service.Authorize(context.Background(), user, "chat.9")

	// Then the denial passes through unchanged
	req.False(decision.Allowed)
	req.Nil(decision.Profile)
}
