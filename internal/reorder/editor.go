// Package reorder implements drag-to-reorder over one ordered collection:
// the new order is shown immediately, persisted as a full id list, and
// rolled back to the previous order if persisting fails.
package reorder

import (
	"context"
	"sync"
)

// Item is anything with a stable integer identity.
type Item interface {
	ItemID() int
}

// State of the editor.
type State int

const (
	Idle State = iota
	Dragging
	PendingCommit
	Committed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case PendingCommit:
		return "pending"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled-back"
	}
	return "unknown"
}

// CommitFunc persists the complete ordered list of ids.
type CommitFunc func(ctx context.Context, ids []int) error

// Move returns a copy of list with the element at from moved to to. All
// other elements keep their relative order.
func Move[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)
	if from == to || from < 0 || to < 0 || from >= len(list) || to >= len(list) {
		return out
	}
	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out
}

// IDs lists the identifiers of items in order.
func IDs[T Item](items []T) []int {
	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ItemID()
	}
	return ids
}

// Editor holds one collection. onChange is called, outside the lock,
// every time the rendered order changes.
type Editor[T Item] struct {
	commit   CommitFunc
	onChange func([]T)

	mu    sync.Mutex
	items []T
	state State
	seq   uint64
}

func New[T Item](commit CommitFunc, onChange func([]T)) *Editor[T] {
	if onChange == nil {
		onChange = func([]T) {}
	}
	return &Editor[T]{commit: commit, onChange: onChange}
}

// Load replaces the collection with a freshly fetched one.
func (e *Editor[T]) Load(items []T) {
	e.mu.Lock()
	e.items = append([]T(nil), items...)
	e.state = Idle
	e.seq++
	snapshot := e.snapshotLocked()
	e.mu.Unlock()
	e.onChange(snapshot)
}

func (e *Editor[T]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Editor[T]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// BeginDrag marks id as being dragged. No network activity happens while
// dragging.
func (e *Editor[T]) BeginDrag(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexLocked(id) < 0 {
		return false
	}
	e.state = Dragging
	return true
}

// CancelDrag ends a drag without a drop target.
func (e *Editor[T]) CancelDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == Dragging {
		e.state = Idle
	}
}

// Pending is an in-flight commit of a reorder.
type Pending struct {
	done chan struct{}
	err  error
}

// Wait blocks until the commit has finished and returns its error.
func (p *Pending) Wait() error {
	<-p.done
	return p.err
}

// Drop releases activeID over the position currently held by overID. An
// unknown id or a drop onto itself is a no-op and returns false. Otherwise
// the new order is rendered before Drop returns and the commit runs in the
// background.
func (e *Editor[T]) Drop(ctx context.Context, activeID, overID int) (*Pending, bool) {
	e.mu.Lock()
	from := e.indexLocked(activeID)
	to := e.indexLocked(overID)
	if from < 0 || to < 0 || from == to {
		if e.state == Dragging {
			e.state = Idle
		}
		e.mu.Unlock()
		return nil, false
	}

	previous := e.snapshotLocked()
	proposed := Move(previous, from, to)
	e.items = proposed
	e.state = PendingCommit
	e.seq++
	seq := e.seq
	rendered := e.snapshotLocked()
	e.mu.Unlock()

	e.onChange(rendered)

	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.err = e.commit(ctx, IDs(proposed))
		e.settle(seq, previous, p.err)
	}()
	return p, true
}

// MoveTo moves id to index and commits, the keyboard equivalent of a drag.
func (e *Editor[T]) MoveTo(ctx context.Context, id, index int) (*Pending, bool) {
	e.mu.Lock()
	if index < 0 || index >= len(e.items) {
		e.mu.Unlock()
		return nil, false
	}
	overID := e.items[index].ItemID()
	e.mu.Unlock()
	return e.Drop(ctx, id, overID)
}

// settle applies the outcome of commit seq. A failed commit restores the
// previous order, unless a later drop or load has already replaced the list.
func (e *Editor[T]) settle(seq uint64, previous []T, err error) {
	e.mu.Lock()
	if seq != e.seq {
		e.mu.Unlock()
		return
	}
	if err == nil {
		e.state = Committed
		e.mu.Unlock()
		return
	}
	e.items = previous
	e.state = RolledBack
	snapshot := e.snapshotLocked()
	e.mu.Unlock()
	e.onChange(snapshot)
}

func (e *Editor[T]) indexLocked(id int) int {
	for i, it := range e.items {
		if it.ItemID() == id {
			return i
		}
	}
	return -1
}

func (e *Editor[T]) snapshotLocked() []T {
	return append([]T(nil), e.items...)
}
