// Package broadcast turns domain events into wire envelopes and decides
// which channels carry them. Everything here is pure: no storage, no
// transport calls, no clocks.
package broadcast

import (
	"fmt"
	"time"

	"collabcast/domain"
	"collabcast/domain/event"
	"collabcast/errors"
)

// Broadcast event names. Clients match on these strings exactly.
const (
	EventMessageNew     = "message.new"
	EventMessageDeleted = "message.deleted"
	EventUserTyping     = "user.typing"
	EventUserStatus     = "user.status"
)

// Build produces the event name and the flat payload delivered to clients.
// A missing required field fails with ErrMalformedEvent; this runs before
// publish so the transport never sees a half-built event.
func Build(e event.DomainEvent) (string, event.Payload, error) {
	switch evt := e.(type) {
	case event.MessageCreated:
		return buildMessageCreated(evt)
	case event.MessageDeleted:
		return buildMessageDeleted(evt)
	case event.TypingStarted:
		return buildTypingStarted(evt)
	case event.PresenceChanged:
		return buildPresenceChanged(evt)
	default:
		return "", nil, fmt.Errorf("%w: unsupported kind %T", errors.ErrMalformedEvent, e)
	}
}

func buildMessageCreated(e event.MessageCreated) (string, event.Payload, error) {
	if e.MessageID <= 0 || e.SenderID <= 0 || e.At.IsZero() {
		return "", nil, fmt.Errorf("%w: message created needs id, sender and timestamp", errors.ErrMalformedEvent)
	}
	if e.GroupID == 0 && e.ReceiverID <= 0 {
		return "", nil, fmt.Errorf("%w: direct message needs a receiver", errors.ErrMalformedEvent)
	}

	payload := event.Payload{
		"id":         e.MessageID,
		"message":    e.Body,
		"content":    e.Body,
		"sender_id":  e.SenderID,
		"created_at": e.At.Format(time.RFC3339),
		"user": map[string]any{
			"id":     e.Sender.ID,
			"name":   e.Sender.Name,
			"avatar": e.Sender.Avatar,
		},
	}

	if e.GroupID != 0 {
		payload["group_id"] = int64(e.GroupID)
		payload["conversation_id"] = fmt.Sprintf("group_%d", e.GroupID)
		payload["message_type"] = string(domain.MessageGroup)
	} else {
		payload["receiver_id"] = e.ReceiverID
	}
	return EventMessageNew, payload, nil
}

func buildMessageDeleted(e event.MessageDeleted) (string, event.Payload, error) {
	if e.MessageID <= 0 || e.At.IsZero() {
		return "", nil, fmt.Errorf("%w: message deleted needs id and timestamp", errors.ErrMalformedEvent)
	}
	switch e.Type {
	case domain.MessageDirect, domain.MessageGroup:
	default:
		return "", nil, fmt.Errorf("%w: unknown message type %q", errors.ErrMalformedEvent, e.Type)
	}

	payload := event.Payload{
		"message_id":   e.MessageID,
		"message_type": string(e.Type),
		"deleted_at":   e.At.Format(time.RFC3339),
	}
	if e.Type == domain.MessageGroup {
		if e.GroupID <= 0 {
			return "", nil, fmt.Errorf("%w: group deletion needs a group id", errors.ErrMalformedEvent)
		}
		payload["group_id"] = int64(e.GroupID)
	}
	if e.DeletedBy > 0 {
		payload["deleted_by"] = e.DeletedBy
	}
	return EventMessageDeleted, payload, nil
}

func buildTypingStarted(e event.TypingStarted) (string, event.Payload, error) {
	if e.UserID <= 0 || e.UserName == "" {
		return "", nil, fmt.Errorf("%w: typing needs user id and name", errors.ErrMalformedEvent)
	}
	payload := event.Payload{
		"user_id": e.UserID,
		"name":    e.UserName,
	}
	return EventUserTyping, payload, nil
}

func buildPresenceChanged(e event.PresenceChanged) (string, event.Payload, error) {
	if e.UserID <= 0 {
		return "", nil, fmt.Errorf("%w: presence change needs a user id", errors.ErrMalformedEvent)
	}
	switch e.Status {
	case domain.StatusOnline, domain.StatusOffline:
	default:
		return "", nil, fmt.Errorf("%w: unknown presence status %q", errors.ErrMalformedEvent, e.Status)
	}
	payload := event.Payload{
		"user_id": e.UserID,
		"status":  string(e.Status),
	}
	return EventUserStatus, payload, nil
}
