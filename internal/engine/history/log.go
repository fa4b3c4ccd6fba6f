package history

import (
	"errors"
	"time"
)

// Common errors for history operations. Both report a no-op rather than a
// failure.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Applier applies an event to a document.
type Applier interface {
	Apply(e Event) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(e Event) error

// Apply calls f(e).
func (f ApplierFunc) Apply(e Event) error {
	return f(e)
}

// Log is the ordered record of applied events plus a redo stack.
// Log is not safe for concurrent use.
type Log struct {
	applied []Event
	redo    [][]Event

	nextGroup  uint64
	groupDepth int
	openGroup  uint64
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{nextGroup: 1}
}

// Append records an applied event and clears the redo stack.
func (l *Log) Append(e Event) Event {
	if l.groupDepth > 0 {
		e.Group = l.openGroup
	} else {
		e.Group = l.allocGroup()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	l.applied = append(l.applied, e)
	l.redo = nil
	return e
}

func (l *Log) allocGroup() uint64 {
	g := l.nextGroup
	l.nextGroup++
	return g
}

// BeginGroup starts a group. Events appended until the matching EndGroup
// undo and redo as one unit. Groups nest; only the outermost one counts.
func (l *Log) BeginGroup() {
	if l.groupDepth == 0 {
		l.openGroup = l.allocGroup()
	}
	l.groupDepth++
}

// EndGroup closes the innermost group.
func (l *Log) EndGroup() {
	if l.groupDepth > 0 {
		l.groupDepth--
	}
}

// IsGrouping returns true if a group is open.
func (l *Log) IsGrouping() bool {
	return l.groupDepth > 0
}

// Undo applies the inverses of the last group, newest first, and moves the
// group to the redo stack. It returns the inverse events applied. If the
// applier fails, the inverses already applied are rolled back and the log
// is unchanged.
func (l *Log) Undo(a Applier) ([]Event, error) {
	if len(l.applied) == 0 {
		return nil, ErrNothingToUndo
	}

	group := l.lastGroup()
	inverses := make([]Event, 0, len(group))
	for i := len(group) - 1; i >= 0; i-- {
		inv := group[i].Inverse()
		if err := a.Apply(inv); err != nil {
			rollback(a, inverses)
			return nil, err
		}
		inverses = append(inverses, inv)
	}

	l.applied = l.applied[:len(l.applied)-len(group)]
	l.redo = append(l.redo, group)
	return inverses, nil
}

// Redo re-applies the last undone group in its original order and appends
// it back to the log.
func (l *Log) Redo(a Applier) ([]Event, error) {
	if len(l.redo) == 0 {
		return nil, ErrNothingToRedo
	}

	group := l.redo[len(l.redo)-1]
	for i, e := range group {
		if err := a.Apply(e); err != nil {
			rollback(a, group[:i])
			return nil, err
		}
	}

	l.redo = l.redo[:len(l.redo)-1]
	l.applied = append(l.applied, group...)
	return group, nil
}

// rollback reverts applied events, newest first. Errors are ignored; the
// applier already failed once and there is nothing better to report.
func rollback(a Applier, applied []Event) {
	for i := len(applied) - 1; i >= 0; i-- {
		_ = a.Apply(applied[i].Inverse())
	}
}

// lastGroup returns a copy of the trailing events sharing the last group.
func (l *Log) lastGroup() []Event {
	end := len(l.applied)
	g := l.applied[end-1].Group
	start := end - 1
	for start > 0 && l.applied[start-1].Group == g {
		start--
	}
	group := make([]Event, end-start)
	copy(group, l.applied[start:end])
	return group
}

// Replay applies every recorded event in order.
func (l *Log) Replay(a Applier) error {
	for _, e := range l.applied {
		if err := a.Apply(e); err != nil {
			return err
		}
	}
	return nil
}

// Events returns a copy of the applied events in order.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.applied))
	copy(out, l.applied)
	return out
}

// Len returns the number of applied events.
func (l *Log) Len() int {
	return len(l.applied)
}

// RedoLen returns the number of undone groups available to redo.
func (l *Log) RedoLen() int {
	return len(l.redo)
}

// CanUndo returns true if undo is available.
func (l *Log) CanUndo() bool {
	return len(l.applied) > 0
}

// CanRedo returns true if redo is available.
func (l *Log) CanRedo() bool {
	return len(l.redo) > 0
}

// Clear removes all history.
func (l *Log) Clear() {
	l.applied = nil
	l.redo = nil
	l.groupDepth = 0
}
