package domain

import "time"

// MessageType discriminates direct conversations from group ones on the wire.
type MessageType string

const (
	MessageDirect MessageType = "direct"
	MessageGroup  MessageType = "group"
)

// DirectMessage is the already-persisted message handed over by the CRUD
// layer once its transaction committed. Immutable from this point on.
type DirectMessage struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Body       string
	Sender     Profile
	CreatedAt  time.Time
}

// GroupMessage is the group-scoped counterpart of DirectMessage.
type GroupMessage struct {
	ID        int64
	GroupID   GroupID
	SenderID  int64
	Body      string
	Sender    Profile
	CreatedAt time.Time
}

// MessageDeletion describes a soft-deleted message. ReceiverID is required
// for direct messages, GroupID for group messages.
type MessageDeletion struct {
	MessageID  int64
	Type       MessageType
	ReceiverID int64
	GroupID    GroupID
	DeletedBy  int64
	DeletedAt  time.Time
}

// TypingNotice signals a user started typing. Routed to the group presence
// channel when GroupID is set, otherwise to the receiver's private channel.
type TypingNotice struct {
	UserID     int64
	UserName   string
	ReceiverID int64
	GroupID    GroupID
}
