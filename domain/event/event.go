package event

import (
	"time"

	"github.com/google/uuid"

	"collabcast/domain"
)

type Kind string

const (
	MessageCreatedKind  Kind = "MESSAGE_CREATED"
	MessageDeletedKind  Kind = "MESSAGE_DELETED"
	TypingStartedKind   Kind = "TYPING_STARTED"
	PresenceChangedKind Kind = "PRESENCE_CHANGED"
)

// DomainEvent is the immutable record of a committed domain occurrence.
// It is built once the originating action completed and discarded after
// publish; there is no persisted lifecycle.
type DomainEvent interface {
	Kind() Kind
}

// Payload is the flat JSON-serializable map delivered inside an Envelope.
type Payload map[string]any

// Envelope is the wire format handed to the broadcast transport.
type Envelope struct {
	Event string  `json:"event"`
	Data  Payload `json:"data"`
}

// MessageCreated covers both direct and group messages.
// GroupID zero means direct scope.
type MessageCreated struct {
	EventID    uuid.UUID
	MessageID  int64
	SenderID   int64
	ReceiverID int64
	GroupID    domain.GroupID
	Body       string
	Sender     domain.Profile
	At         time.Time
}

func (e MessageCreated) Kind() Kind { return MessageCreatedKind }

func (e MessageCreated) Type() domain.MessageType {
	if e.GroupID != 0 {
		return domain.MessageGroup
	}
	return domain.MessageDirect
}

type MessageDeleted struct {
	EventID    uuid.UUID
	MessageID  int64
	Type       domain.MessageType
	ReceiverID int64
	GroupID    domain.GroupID
	DeletedBy  int64
	At         time.Time
}

func (e MessageDeleted) Kind() Kind { return MessageDeletedKind }

type TypingStarted struct {
	EventID    uuid.UUID
	UserID     int64
	UserName   string
	ReceiverID int64
	GroupID    domain.GroupID
}

func (e TypingStarted) Kind() Kind { return TypingStartedKind }

type PresenceChanged struct {
	EventID uuid.UUID
	UserID  int64
	Status  domain.PresenceStatus
	At      time.Time
}

func (e PresenceChanged) Kind() Kind { return PresenceChangedKind }
