package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"collabcast/broadcast"
	"collabcast/domain"
	"collabcast/domain/event"
)

// Dispatcher enqueues a validated event for its single publish attempt.
// Satisfied by runtime.Orchestrator.
type Dispatcher interface {
	Dispatch(evt event.DomainEvent)
}

type INotifierService interface {
	DirectMessageSent(ctx context.Context, m domain.DirectMessage) error
	GroupMessageSent(ctx context.Context, m domain.GroupMessage) error
	MessageDeleted(ctx context.Context, d domain.MessageDeletion) error
	Typing(ctx context.Context, t domain.TypingNotice) error
	StatusChanged(ctx context.Context, userID int64, status domain.PresenceStatus) error
}

// NotifierService is the entry point for the CRUD layer once a domain
// action committed. It validates the event synchronously, so the acting
// request learns about a malformed event immediately, then hands it to
// the publish pipeline and returns without waiting for delivery.
type NotifierService struct {
	dispatcher Dispatcher
}

func NewNotifierService(dispatcher Dispatcher) *NotifierService {
	return &NotifierService{dispatcher: dispatcher}
}

func (s *NotifierService) DirectMessageSent(_ context.Context, m domain.DirectMessage) error {
	return s.dispatch(event.MessageCreated{
		EventID:    uuid.New(),
		MessageID:  m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Body:       m.Body,
		Sender:     m.Sender,
		At:         m.CreatedAt,
	})
}

func (s *NotifierService) GroupMessageSent(_ context.Context, m domain.GroupMessage) error {
	return s.dispatch(event.MessageCreated{
		EventID:   uuid.New(),
		MessageID: m.ID,
		SenderID:  m.SenderID,
		GroupID:   m.GroupID,
		Body:      m.Body,
		Sender:    m.Sender,
		At:        m.CreatedAt,
	})
}

func (s *NotifierService) MessageDeleted(_ context.Context, d domain.MessageDeletion) error {
	at := d.DeletedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	return s.dispatch(event.MessageDeleted{
		EventID:    uuid.New(),
		MessageID:  d.MessageID,
		Type:       d.Type,
		ReceiverID: d.ReceiverID,
		GroupID:    d.GroupID,
		DeletedBy:  d.DeletedBy,
		At:         at,
	})
}

func (s *NotifierService) Typing(_ context.Context, t domain.TypingNotice) error {
	return s.dispatch(event.TypingStarted{
		EventID:    uuid.New(),
		UserID:     t.UserID,
		UserName:   t.UserName,
		ReceiverID: t.ReceiverID,
		GroupID:    t.GroupID,
	})
}

func (s *NotifierService) StatusChanged(_ context.Context, userID int64, status domain.PresenceStatus) error {
	return s.dispatch(event.PresenceChanged{
		EventID: uuid.New(),
		UserID:  userID,
		Status:  status,
		At:      time.Now().UTC(),
	})
}

// dispatch validates before enqueueing: a malformed event must abort the
// triggering action here, never reach the transport.
func (s *NotifierService) dispatch(evt event.DomainEvent) error {
	if _, _, err := broadcast.Build(evt); err != nil {
		return err
	}
	if _, err := broadcast.Resolve(evt); err != nil {
		return err
	}
	s.dispatcher.Dispatch(evt)
	return nil
}
