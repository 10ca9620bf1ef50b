package runtime

import (
	"sync"

	"collabcast/contract"
	"collabcast/domain"
)

type Set map[string]struct{}

var _ contract.IRegistry = (*Registry)(nil)

// Registry tracks live local subscriptions: which subscriber connections
// exist, which channels they listen on, and the presence profile they
// joined with. Subscriptions are ephemeral; nothing here survives a
// process restart.
type Registry struct {
	mu             sync.RWMutex
	sessions       map[string]contract.EventSink // subscriber id -> sink
	profiles       map[string]domain.Profile     // subscriber id -> presence profile
	channelMembers map[string]Set                // channel wire name -> subscriber ids
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:       make(map[string]contract.EventSink),
		profiles:       make(map[string]domain.Profile),
		channelMembers: make(map[string]Set),
	}
}

// Subscribers resolves the active sinks listening on a channel.
// It performs a two-step lookup:
// 1. Identifies subscriber IDs associated with the channel.
// 2. Resolves those IDs into actual EventSinks using the sessions map.
//
// Returns nil if the channel has no live subscribers.
func (r *Registry) Subscribers(channel domain.Channel) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.channelMembers[channel.String()]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for subscriberID := range members {
		if sink, exists := r.sessions[subscriberID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Roster reports who is currently connected on a channel, for the
// presence "who's online" feature.
func (r *Registry) Roster(channel domain.Channel) []domain.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.channelMembers[channel.String()]
	if !ok {
		return nil
	}
	var roster []domain.Profile
	for subscriberID := range members {
		if profile, exists := r.profiles[subscriberID]; exists {
			roster = append(roster, profile)
		}
	}
	return roster
}

// Subscribe registers an authorized connection on a channel. The caller
// must have run the channel through the authorization gate first; the
// registry itself enforces nothing.
func (r *Registry) Subscribe(subscriberID string, channel domain.Channel, profile domain.Profile, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[subscriberID] = sink
	r.profiles[subscriberID] = profile

	name := channel.String()
	if _, ok := r.channelMembers[name]; !ok {
		r.channelMembers[name] = make(Set)
	}
	r.channelMembers[name][subscriberID] = struct{}{}
}

// Unsubscribe removes a subscriber from a channel, and drops the session
// entirely once it listens on no channel at all. No empty sets are left
// behind to prevent memory growth over time.
func (r *Registry) Unsubscribe(subscriberID string, channel domain.Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := channel.String()
	if members, ok := r.channelMembers[name]; ok {
		delete(members, subscriberID)
		if len(members) == 0 {
			delete(r.channelMembers, name)
		}
	}

	for _, members := range r.channelMembers {
		if _, stillSubscribed := members[subscriberID]; stillSubscribed {
			return
		}
	}
	delete(r.sessions, subscriberID)
	delete(r.profiles, subscriberID)
}
