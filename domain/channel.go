package domain

import (
	"fmt"
	"strconv"
	"strings"

	"collabcast/errors"
)

// ChannelKind discriminates the three broadcast destinations.
type ChannelKind string

const (
	ChannelPublic   ChannelKind = "public"
	ChannelPrivate  ChannelKind = "private"
	ChannelPresence ChannelKind = "presence"
)

// PublicChatName is the well-known catch-all channel any connected client
// may read. Presence/status events are delivered there.
const PublicChatName = "chat"

const (
	privatePrefix  = "chat."
	presencePrefix = "group."
)

// Channel identifies a logical broadcast destination.
// The zero value is not a valid channel; use the constructors.
type Channel struct {
	Kind    ChannelKind
	Name    string  // public channels only
	UserID  int64   // private channels only
	GroupID GroupID // presence channels only
}

func Public(name string) Channel {
	return Channel{Kind: ChannelPublic, Name: name}
}

// PrivateUser is the per-user channel restricted to that single identity.
func PrivateUser(userID int64) Channel {
	return Channel{Kind: ChannelPrivate, UserID: userID}
}

// PresenceGroup is the per-group channel restricted to current members.
func PresenceGroup(groupID GroupID) Channel {
	return Channel{Kind: ChannelPresence, GroupID: groupID}
}

// String renders the wire name clients subscribe with:
// "chat", "chat.<userId>" or "group.<groupId>".
func (c Channel) String() string {
	switch c.Kind {
	case ChannelPrivate:
		return privatePrefix + strconv.FormatInt(c.UserID, 10)
	case ChannelPresence:
		return presencePrefix + strconv.FormatInt(int64(c.GroupID), 10)
	default:
		return c.Name
	}
}

// ParseChannel maps a wire name back to a Channel.
// Unknown shapes fail with ErrUnknownChannel so the authorization layer
// can deny them without guessing.
func ParseChannel(name string) (Channel, error) {
	switch {
	case name == PublicChatName:
		return Public(name), nil
	case strings.HasPrefix(name, privatePrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(name, privatePrefix), 10, 64)
		if err != nil || id <= 0 {
			return Channel{}, fmt.Errorf("%w: %q", errors.ErrUnknownChannel, name)
		}
		return PrivateUser(id), nil
	case strings.HasPrefix(name, presencePrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(name, presencePrefix), 10, 64)
		if err != nil || id <= 0 {
			return Channel{}, fmt.Errorf("%w: %q", errors.ErrUnknownChannel, name)
		}
		return PresenceGroup(GroupID(id)), nil
	default:
		return Channel{}, fmt.Errorf("%w: %q", errors.ErrUnknownChannel, name)
	}
}
