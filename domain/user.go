// Package domain contains core concepts of the notification path.
// This file defines user identity and presence.
// No runtime, network, or UI logic should be added here.
package domain

// User is the authenticated identity attached to a subscription request.
type User struct {
	ID   int64
	Name string
}

// Profile is the displayable identity broadcast on presence channels
// and attached to message payloads.
type Profile struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusOffline PresenceStatus = "offline"
)

// Decision is the outcome of a channel authorization check.
// Profile is set only when a presence channel grants access.
type Decision struct {
	Allowed bool
	Profile *Profile
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func AllowWithProfile(p Profile) Decision {
	return Decision{Allowed: true, Profile: &p}
}

func Deny() Decision {
	return Decision{}
}
