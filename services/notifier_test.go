package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "collabcast/errors"

	"collabcast/domain"
	"collabcast/domain/event"
)

type capturingDispatcher struct {
	events []event.DomainEvent
}

func (d *capturingDispatcher) Dispatch(evt event.DomainEvent) {
	d.events = append(d.events, evt)
}

func TestNotifierService_DirectMessageSent(t *testing.T) {
	req := require.New(t)

	// Given a committed direct message from user 5 to user 9
	dispatcher := &capturingDispatcher{}
	service := NewNotifierService(dispatcher)
	message := domain.DirectMessage{
		ID:         101,
		SenderID:   5,
		ReceiverID: 9,
		Body:       "hi",
		Sender:     domain.Profile{ID: 5, Name: "Alice", Avatar: "a.png"},
		CreatedAt:  time.Now(),
	}

	// When notifying
	err := service.DirectMessageSent(context.Background(), message)

	// Then the event is dispatched with a fresh event id
	req.NoError(err)
	req.Len(dispatcher.events, 1)
	created, ok := dispatcher.events[0].(event.MessageCreated)
	req.True(ok)
	req.Equal(int64(101), created.MessageID)
	req.Equal(int64(9), created.ReceiverID)
	req.NotEqual("00000000-0000-0000-0000-000000000000", created.EventID.String())
}

func TestNotifierService_DirectMessageSent_MalformedIsRejectedSynchronously(t *testing.T) {
	req := require.New(t)

	// Given a direct message without a receiver
	dispatcher := &capturingDispatcher{}
	service := NewNotifierService(dispatcher)
	message := domain.DirectMessage{
		ID:        101,
		SenderID:  5,
		Body:      "hi",
		Sender:    domain.Profile{ID: 5, Name: "Alice"},
		CreatedAt: time.Now(),
	}

	// When notifying
	err := service.DirectMessageSent(context.Background(), message)

	// Then the caller gets the error and nothing reaches the queue
	req.Error(err)
	req.True(errors.Is(err, apperrors.ErrMalformedEvent))
	req.Empty(dispatcher.events)
}

func TestNotifierService_GroupMessageSent(t *testing.T) {
	req := require.New(t)

	dispatcher := &capturingDispatcher{}
	service := NewNotifierService(dispatcher)

	err := service.GroupMessageSent(context.Background(), domain.GroupMessage{
		ID:        77,
		GroupID:   3,
		SenderID:  5,
		Body:      "hello group",
		Sender:    domain.Profile{ID: 5, Name: "Alice"},
		CreatedAt: time.Now(),
	})

	req.NoError(err)
	req.Len(dispatcher.events, 1)
	created, ok := dispatcher.events[0].(event.MessageCreated)
	req.True(ok)
	req.Equal(domain.GroupID(3), created.GroupID)
}

func TestNotifierService_MessageDeleted_DefaultsDeletionTime(t *testing.T) {
	req := require.New(t)

	// Given a group deletion without a timestamp
	dispatcher := &capturingDispatcher{}
	service := NewNotifierService(dispatcher)

	// When notifying
	err := service.MessageDeleted(context.Background(), domain.MessageDeletion{
		MessageID: 42,
		Type:      domain.MessageGroup,
		GroupID:   3,
		DeletedBy: 5,
	})

	// Then the event carries a non-zero deletion time
	req.NoError(err)
	req.Len(dispatcher.events, 1)
	deleted, ok := dispatcher.events[0].(event.MessageDeleted)
	req.True(ok)
	req.False(deleted.At.IsZero())
}

func TestNotifierService_Typing_UnroutableIsRejected(t *testing.T) {
	req := require.New(t)

	// Given a typing notice with neither group nor receiver
	dispatcher := &capturingDispatcher{}
	service := NewNotifierService(dispatcher)

	// When notifying
	err := service.Typing(context.Background(), domain.TypingNotice{UserID: 5, UserName: "Alice"})

	// Then it is refused before dispatch
	req.Error(err)
	req.Empty(dispatcher.events)
}

func TestNotifierService_StatusChanged(t *testing.T) {
	req := require.New(t)

	dispatcher := &capturingDispatcher{}
	service := NewNotifierService(dispatcher)

	err := service.StatusChanged(context.Background(), 5, domain.StatusOnline)

	req.NoError(err)
	req.Len(dispatcher.events, 1)
	changed, ok := dispatcher.events[0].(event.PresenceChanged)
	req.True(ok)
	req.Equal(domain.StatusOnline, changed.Status)
}
