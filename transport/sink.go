package transport

import (
	"context"
	"fmt"

	"collabcast/contract"
	"collabcast/domain/event"
)

var _ contract.EventSink = (*ChannelSink)(nil)

// ChannelSink bridges the hub to a consumer goroutine (websocket writer,
// test assertion) through a buffered channel. When the buffer is full the
// event is dropped rather than blocking the fan-out.
type ChannelSink struct {
	ch chan event.Envelope
}

func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan event.Envelope, buffer)}
}

// Consume never blocks and never waits on the context: either the
// buffer has room right now or the envelope is dropped.
func (s *ChannelSink) Consume(_ context.Context, env event.Envelope) error {
	select {
	case s.ch <- env:
		return nil
	default:
		return fmt.Errorf("sink buffer full, envelope dropped")
	}
}

// Events exposes the delivery channel to the consumer side.
func (s *ChannelSink) Events() <-chan event.Envelope {
	return s.ch
}
