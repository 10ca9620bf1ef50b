//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"collabcast/domain"
	"collabcast/domain/event"
)

// Transport is the only outward call this core makes: hand an envelope to
// the pub/sub service for fan-out to subscribed clients. Best-effort; a
// returned error is logged by the caller and never rolls back the domain
// action that produced the event.
type Transport interface {
	Publish(ctx context.Context, channel domain.Channel, eventName string, payload event.Payload) error
}

// MembershipDirectory answers group membership questions. Always queried
// live; authorization never caches the answer.
type MembershipDirectory interface {
	IsMember(ctx context.Context, userID int64, groupID domain.GroupID) (bool, error)
}

// ProfileDirectory resolves the displayable identity of a user.
type ProfileDirectory interface {
	GetProfile(ctx context.Context, userID int64) (domain.Profile, error)
}

// AuthorizationGate decides whether a connecting client may subscribe to a
// channel. Failures in collaborators surface as Deny, never as errors.
type AuthorizationGate interface {
	Authorize(ctx context.Context, user domain.User, channel domain.Channel) domain.Decision
}

// EventSink receives envelopes delivered on a subscribed channel.
type EventSink interface {
	Consume(ctx context.Context, env event.Envelope) error
}

// IRegistry tracks live local subscriptions per channel for the in-process
// hub transport.
type IRegistry interface {
	Subscribers(channel domain.Channel) []EventSink
	Subscribe(subscriberID string, channel domain.Channel, profile domain.Profile, sink EventSink)
	Unsubscribe(subscriberID string, channel domain.Channel)
	Roster(channel domain.Channel) []domain.Profile
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
