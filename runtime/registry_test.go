package runtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"collabcast/domain"
	"collabcast/domain/event"
)

type Sink struct{}

func (s Sink) Consume(ctx context.Context, env event.Envelope) error {
	return nil
}

func TestRegistry_Subscribe_One_Channel_One_Subscriber(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()
	channel := domain.PresenceGroup(1)
	sink := Sink{}

	// Given nobody is connected
	req.Empty(registry.Subscribers(channel))

	// When a subscriber joins the channel
	registry.Subscribe(subscriberID, channel, domain.Profile{ID: 5, Name: "Alice"}, sink)

	// Then
	req.Len(registry.Subscribers(channel), 1)
	req.Contains(registry.Subscribers(channel), sink)

	roster := registry.Roster(channel)
	req.Len(roster, 1)
	req.Equal("Alice", roster[0].Name)
}

func TestRegistry_Subscribe_One_Channel_Multiple_Subscribers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID1 := uuid.NewString()
	subscriberID2 := uuid.NewString()
	channel := domain.PresenceGroup(1)

	// When two subscribers join the same channel
	registry.Subscribe(subscriberID1, channel, domain.Profile{ID: 5, Name: "Alice"}, Sink{})
	registry.Subscribe(subscriberID2, channel, domain.Profile{ID: 9, Name: "Bob"}, Sink{})

	// Then
	req.Len(registry.Subscribers(channel), 2)
	req.Len(registry.Roster(channel), 2)
}

func TestRegistry_Subscriber_On_Multiple_Channels(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()
	private := domain.PrivateUser(5)
	presence := domain.PresenceGroup(3)
	sink := Sink{}

	// Given a subscriber on two channels
	registry.Subscribe(subscriberID, private, domain.Profile{ID: 5, Name: "Alice"}, sink)
	registry.Subscribe(subscriberID, presence, domain.Profile{ID: 5, Name: "Alice"}, sink)

	// When it leaves only one of them
	registry.Unsubscribe(subscriberID, private)

	// Then the session survives on the other channel
	req.Empty(registry.Subscribers(private))
	req.Len(registry.Subscribers(presence), 1)
}

func TestRegistry_UnSubscribe_One_Channel_One_Subscriber(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID := uuid.NewString()
	channel := domain.PresenceGroup(1)

	// Given a subscriber on the channel
	registry.Subscribe(subscriberID, channel, domain.Profile{ID: 5, Name: "Alice"}, Sink{})

	// When it unsubscribes
	registry.Unsubscribe(subscriberID, channel)

	// Then nobody is left and the channel is gone
	req.Nil(registry.Subscribers(channel))
	req.Nil(registry.Roster(channel))
}

func TestRegistry_UnSubscribe_One_Channel_Multiple_Subscribers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	subscriberID1 := uuid.NewString()
	subscriberID2 := uuid.NewString()
	channel := domain.PresenceGroup(1)

	registry.Subscribe(subscriberID1, channel, domain.Profile{ID: 5, Name: "Alice"}, Sink{})
	registry.Subscribe(subscriberID2, channel, domain.Profile{ID: 9, Name: "Bob"}, Sink{})

	// When one of them unsubscribes
	registry.Unsubscribe(subscriberID1, channel)

	// Then only the other is left
	req.Len(registry.Subscribers(channel), 1)
	roster := registry.Roster(channel)
	req.Len(roster, 1)
	req.Equal("Bob", roster[0].Name)
}
