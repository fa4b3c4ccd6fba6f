package bridge

import (
	"context"
	"errors"
)

// DefaultCapacity is the default number of undrained messages a Bridge
// buffers before senders block.
const DefaultCapacity = 64

// ErrClosed is returned by Send after the bridge was closed.
var ErrClosed = errors.New("bridge closed")

// Bridge is a one-way channel from background producers to the update
// loop. Messages are delivered in send order.
type Bridge struct {
	ch   chan Message
	done chan struct{}
}

// New creates a bridge buffering up to capacity messages.
func New(capacity int) *Bridge {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Bridge{
		ch:   make(chan Message, capacity),
		done: make(chan struct{}),
	}
}

// Sender returns the send-only handle given to producers.
func (b *Bridge) Sender() Sender {
	return Sender{ch: b.ch, done: b.done}
}

// Drain returns the messages waiting at the time of the call without
// blocking. Messages sent while draining are left for the next call.
func (b *Bridge) Drain() []Message {
	n := len(b.ch)
	if n == 0 {
		return nil
	}
	out := make([]Message, 0, n)
	for range n {
		select {
		case m := <-b.ch:
			out = append(out, m)
		default:
			return out
		}
	}
	return out
}

// Pending returns the number of undrained messages.
func (b *Bridge) Pending() int {
	return len(b.ch)
}

// Close releases blocked senders; later sends fail with ErrClosed.
// Undrained messages stay readable. Close must be called at most once.
func (b *Bridge) Close() {
	close(b.done)
}

// Sender is the producer side of a Bridge. The zero value drops every
// message.
type Sender struct {
	ch   chan<- Message
	done <-chan struct{}
}

// Send delivers m, waiting for buffer space until ctx is done or the
// bridge is closed. A message is delivered whenever there is room, even
// with ctx already done; ctx only bounds the wait.
func (s Sender) Send(ctx context.Context, m Message) error {
	if s.ch == nil {
		return nil
	}
	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	select {
	case s.ch <- m:
		return nil
	default:
	}
	select {
	case s.ch <- m:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}
