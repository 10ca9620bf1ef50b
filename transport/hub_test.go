package transport

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"collabcast/contract"
	"collabcast/domain"
	"collabcast/domain/event"
	apperrors "collabcast/errors"
	"collabcast/mocks"
)

func TestHub_Publish_WrapsEnvelopeAndFansOut(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given two subscribers on chat.9
	registry := mocks.NewMockIRegistry(ctrl)
	sink1 := mocks.NewMockEventSink(ctrl)
	sink2 := mocks.NewMockEventSink(ctrl)
	channel := domain.PrivateUser(9)
	registry.EXPECT().
		Subscribers(channel).
		Return([]contract.EventSink{sink1, sink2})

	expected := event.Envelope{
		Event: "message.new",
		Data:  event.Payload{"id": int64(101), "message": "hi"},
	}
	sink1.EXPECT().Consume(gomock.Any(), expected).Return(nil)
	sink2.EXPECT().Consume(gomock.Any(), expected).Return(nil)

	hub := NewHub(slog.Default(), registry, time.Second)

	// When publishing
	err := hub.Publish(context.Background(), channel, "message.new",
		event.Payload{"id": int64(101), "message": "hi"})

	// Then both sinks got the same envelope
	req.NoError(err)
}

func TestHub_Publish_NoSubscribersIsANoop(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	registry := mocks.NewMockIRegistry(ctrl)
	registry.EXPECT().
		Subscribers(domain.Public("chat")).
		Return(nil)

	hub := NewHub(slog.Default(), registry, time.Second)

	err := hub.Publish(context.Background(), domain.Public("chat"), "user.status",
		event.Payload{"user_id": int64(5), "status": "online"})

	req.NoError(err)
}

func TestHub_Publish_FailingSinkDoesNotFailThePublish(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)

	// Given one broken sink and one healthy sink
	registry := mocks.NewMockIRegistry(ctrl)
	broken := mocks.NewMockEventSink(ctrl)
	healthy := mocks.NewMockEventSink(ctrl)
	channel := domain.PresenceGroup(3)
	registry.EXPECT().
		Subscribers(channel).
		Return([]contract.EventSink{broken, healthy})

	broken.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(apperrors.ErrTransportFailure)
	healthy.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil)

	hub := NewHub(slog.Default(), registry, time.Second)

	// When publishing
	err := hub.Publish(context.Background(), channel, "message.new",
		event.Payload{"id": int64(202)})

	// Then the broken sink misses the event and the publish still succeeds
	req.NoError(err)
}

func TestChannelSink_DropsWhenBufferFull(t *testing.T) {
	req := require.New(t)

	// Given a sink with room for a single envelope
	sink := NewChannelSink(1)
	ctx := context.Background()

	req.NoError(sink.Consume(ctx, event.Envelope{Event: "message.new"}))

	// When a second envelope arrives before the consumer drained the first
	err := sink.Consume(ctx, event.Envelope{Event: "user.typing"})

	// Then it is dropped, not blocked on
	req.Error(err)

	env := <-sink.Events()
	req.Equal("message.new", env.Event)
}

func TestChannelSink_DeliveryIgnoresContextState(t *testing.T) {
	req := require.New(t)

	// Given a sink with room and a context that already expired
	sink := NewChannelSink(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// When an envelope arrives
	err := sink.Consume(ctx, event.Envelope{Event: "message.new"})

	// Then it is still delivered immediately
	req.NoError(err)
	env := <-sink.Events()
	req.Equal("message.new", env.Event)
}
