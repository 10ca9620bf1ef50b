// Package authz evaluates channel subscription requests.
// There is deliberately no bypass branch: every private and presence
// check runs against the live identity and membership data.
package authz

import (
	"context"
	"log/slog"

	"collabcast/contract"
	"collabcast/domain"
)

var _ contract.AuthorizationGate = (*Gate)(nil)

type Gate struct {
	log      *slog.Logger
	members  contract.MembershipDirectory
	profiles contract.ProfileDirectory
}

func NewGate(log *slog.Logger, members contract.MembershipDirectory, profiles contract.ProfileDirectory) *Gate {
	return &Gate{log: log, members: members, profiles: profiles}
}

// Authorize decides a subscription request. Collaborator failures (group
// missing, store unavailable) are logged and answered with a clean Deny;
// nothing escapes past this boundary to crash the handshake.
func (g *Gate) Authorize(ctx context.Context, user domain.User, channel domain.Channel) domain.Decision {
	switch channel.Kind {
	case domain.ChannelPublic:
		return domain.Allow()

	case domain.ChannelPrivate:
		if user.ID == channel.UserID {
			return domain.Allow()
		}
		g.log.Debug("private channel refused",
			"channel", channel.String(), "user_id", user.ID)
		return domain.Deny()

	case domain.ChannelPresence:
		return g.authorizePresence(ctx, user, channel)

	default:
		g.log.Warn("unknown channel kind refused", "channel", channel.String())
		return domain.Deny()
	}
}

// authorizePresence re-checks membership on every attempt. Membership is
// never cached here: revoking a member must flip the next check to Deny.
func (g *Gate) authorizePresence(ctx context.Context, user domain.User, channel domain.Channel) domain.Decision {
	member, err := g.members.IsMember(ctx, user.ID, channel.GroupID)
	if err != nil {
		g.log.Error("membership lookup failed, denying subscription",
			"channel", channel.String(), "user_id", user.ID, "error", err)
		return domain.Deny()
	}
	if !member {
		return domain.Deny()
	}

	profile, err := g.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		// A member without a stored profile can still join; the roster
		// falls back to the identity we already authenticated.
		g.log.Warn("profile lookup failed for presence member",
			"user_id", user.ID, "error", err)
		profile = domain.Profile{ID: user.ID, Name: user.Name}
	}
	return domain.AllowWithProfile(profile)
}
