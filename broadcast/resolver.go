package broadcast

import (
	"fmt"

	"collabcast/domain"
	"collabcast/domain/event"
	"collabcast/errors"
)

// Resolve maps an event to the channels carrying it. Pure function of the
// event kind and target scope; resolving the same event twice yields the
// identical channel set.
//
// Group events target the precise presence channel, never the public
// catch-all. The sender's own channel is never included for direct
// messages; the sender already holds local optimistic state.
func Resolve(e event.DomainEvent) ([]domain.Channel, error) {
	switch evt := e.(type) {
	case event.MessageCreated:
		if evt.GroupID != 0 {
			return []domain.Channel{domain.PresenceGroup(evt.GroupID)}, nil
		}
		if evt.ReceiverID <= 0 {
			return nil, fmt.Errorf("%w: direct message without receiver", errors.ErrMalformedEvent)
		}
		return []domain.Channel{domain.PrivateUser(evt.ReceiverID)}, nil

	case event.MessageDeleted:
		if evt.Type == domain.MessageGroup {
			if evt.GroupID <= 0 {
				return nil, fmt.Errorf("%w: group deletion without group", errors.ErrMalformedEvent)
			}
			return []domain.Channel{domain.PresenceGroup(evt.GroupID)}, nil
		}
		if evt.ReceiverID <= 0 {
			return nil, fmt.Errorf("%w: direct deletion without receiver", errors.ErrMalformedEvent)
		}
		return []domain.Channel{domain.PrivateUser(evt.ReceiverID)}, nil

	case event.TypingStarted:
		if evt.GroupID != 0 {
			return []domain.Channel{domain.PresenceGroup(evt.GroupID)}, nil
		}
		if evt.ReceiverID <= 0 {
			return nil, fmt.Errorf("%w: typing without receiver or group", errors.ErrMalformedEvent)
		}
		return []domain.Channel{domain.PrivateUser(evt.ReceiverID)}, nil

	case event.PresenceChanged:
		return []domain.Channel{domain.Public(domain.PublicChatName)}, nil

	default:
		return nil, fmt.Errorf("%w: unsupported kind %T", errors.ErrMalformedEvent, e)
	}
}
