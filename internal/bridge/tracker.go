package bridge

import "context"

// Tracker remembers the current request per kind and decides whether a
// result is still wanted. It belongs to the update loop and is not safe
// for concurrent use.
type Tracker struct {
	current map[Kind]Request
	cancels map[Kind]context.CancelFunc
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		current: make(map[Kind]Request),
		cancels: make(map[Kind]context.CancelFunc),
	}
}

// Issue records a new request for kind, superseding any earlier one, and
// returns it. The context of a superseded request is cancelled.
func (t *Tracker) Issue(kind Kind, query string) Request {
	t.stop(kind)
	req := NewRequest(kind, query)
	t.current[kind] = req
	return req
}

// Start issues a request like Issue and returns a context derived from
// parent for the producer serving it. The context is cancelled once the
// request is superseded, cancelled or answered.
func (t *Tracker) Start(parent context.Context, kind Kind, query string) (context.Context, Request) {
	req := t.Issue(kind, query)
	ctx, cancel := context.WithCancel(parent)
	t.cancels[kind] = cancel
	return ctx, req
}

// Current returns the outstanding request for kind.
func (t *Tracker) Current(kind Kind) (Request, bool) {
	req, ok := t.current[kind]
	return req, ok
}

// Cancel forgets the request for kind; any result for it becomes stale
// and its producer's context is cancelled.
func (t *Tracker) Cancel(kind Kind) {
	t.stop(kind)
	delete(t.current, kind)
}

func (t *Tracker) stop(kind Kind) {
	if cancel, ok := t.cancels[kind]; ok {
		cancel()
		delete(t.cancels, kind)
	}
}

// Accept reports whether m answers the current request of its kind. The
// query string is the staleness key: a result is stale when a different
// query was issued after it. Configuration reloads are never stale.
func (t *Tracker) Accept(m Message) bool {
	if m.Kind() == KindConfig {
		return true
	}
	req, ok := t.current[m.Kind()]
	if !ok || req.Query != m.Request().Query {
		return false
	}
	if req.ID == m.Request().ID {
		// Answered; release the producer's context.
		t.stop(m.Kind())
	}
	return true
}
