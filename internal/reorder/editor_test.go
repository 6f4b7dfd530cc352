package reorder

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type row struct {
	id   int
	name string
}

func (r row) ItemID() int { return r.id }

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.name
	}
	return out
}

// gate is a commit func whose calls each block until released by index.
type gate struct {
	mu       sync.Mutex
	calls    [][]int
	releases []chan error
	started  chan struct{}
}

func newGate() *gate {
	g := &gate{started: make(chan struct{}, 4)}
	for i := 0; i < 4; i++ {
		g.releases = append(g.releases, make(chan error, 1))
	}
	return g
}

func (g *gate) commit(ctx context.Context, ids []int) error {
	g.mu.Lock()
	n := len(g.calls)
	g.calls = append(g.calls, ids)
	g.mu.Unlock()
	g.started <- struct{}{}
	return <-g.releases[n]
}

// release resolves the n-th commit call with err.
func (g *gate) release(n int, err error) {
	g.releases[n] <- err
}

func (g *gate) submitted() [][]int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([][]int(nil), g.calls...)
}

var abc = []row{{1, "A"}, {2, "B"}, {3, "C"}}

func TestMove(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{2, 0, []string{"C", "A", "B"}},
		{0, 2, []string{"B", "C", "A"}},
		{1, 1, []string{"A", "B", "C"}},
		{0, 1, []string{"B", "A", "C"}},
		{5, 0, []string{"A", "B", "C"}},
	}
	for _, tt := range tests {
		got := names(Move(abc, tt.from, tt.to))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Move(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
	if names(abc)[0] != "A" {
		t.Error("Move modified its input")
	}
}

func TestDropRendersBeforeCommit(t *testing.T) {
	g := newGate()
	var (
		mu       sync.Mutex
		rendered [][]string
	)
	e := New[row](g.commit, func(rows []row) {
		mu.Lock()
		rendered = append(rendered, names(rows))
		mu.Unlock()
	})
	e.Load(abc)

	if !e.BeginDrag(3) || e.State() != Dragging {
		t.Fatal("drag did not start")
	}
	p, ok := e.Drop(context.Background(), 3, 1)
	if !ok {
		t.Fatal("Drop reported no-op")
	}

	// commit has not resolved yet
	if got := names(e.Items()); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Errorf("rendered order = %v", got)
	}
	if e.State() != PendingCommit {
		t.Errorf("state = %v, want pending", e.State())
	}
	<-g.started
	if calls := g.submitted(); len(calls) != 1 || !reflect.DeepEqual(calls[0], []int{3, 1, 2}) {
		t.Errorf("submitted %v, want [[3 1 2]]", calls)
	}

	g.release(0, nil)
	if err := p.Wait(); err != nil {
		t.Fatal(err)
	}
	if e.State() != Committed {
		t.Errorf("state = %v, want committed", e.State())
	}

	mu.Lock()
	defer mu.Unlock()
	if len(rendered) != 2 || !reflect.DeepEqual(rendered[1], []string{"C", "A", "B"}) {
		t.Errorf("renders = %v", rendered)
	}
}

func TestDropSamePositionIsNoop(t *testing.T) {
	g := newGate()
	e := New[row](g.commit, nil)
	e.Load(abc)
	e.BeginDrag(2)

	if _, ok := e.Drop(context.Background(), 2, 2); ok {
		t.Error("drop onto itself should be a no-op")
	}
	if _, ok := e.Drop(context.Background(), 2, 99); ok {
		t.Error("drop onto an unknown id should be a no-op")
	}
	if e.State() != Idle {
		t.Errorf("state = %v, want idle", e.State())
	}
	if len(g.submitted()) != 0 {
		t.Error("no-op drop must not commit")
	}
}

func TestFailedCommitRollsBack(t *testing.T) {
	g := newGate()
	e := New[row](g.commit, nil)
	e.Load(abc)

	p, _ := e.Drop(context.Background(), 1, 3)
	if got := names(e.Items()); !reflect.DeepEqual(got, []string{"B", "C", "A"}) {
		t.Fatalf("optimistic order = %v", got)
	}
	<-g.started
	g.release(0, errors.New("boom"))

	if err := p.Wait(); err == nil {
		t.Error("Wait should return the commit error")
	}
	if got := names(e.Items()); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("order after rollback = %v", got)
	}
	if e.State() != RolledBack {
		t.Errorf("state = %v, want rolled-back", e.State())
	}
}

func TestSupersededFailureDoesNotRollBack(t *testing.T) {
	g := newGate()
	e := New[row](g.commit, nil)
	e.Load(abc)
	ctx := context.Background()

	first, _ := e.Drop(ctx, 3, 1) // C A B
	<-g.started
	second, _ := e.Drop(ctx, 2, 3) // B C A
	<-g.started

	g.release(0, errors.New("first failed"))
	if err := first.Wait(); err == nil {
		t.Fatal("first commit should fail")
	}
	if got := names(e.Items()); !reflect.DeepEqual(got, []string{"B", "C", "A"}) {
		t.Errorf("stale failure rolled back a newer order: %v", got)
	}
	if e.State() != PendingCommit {
		t.Errorf("state = %v, want pending", e.State())
	}

	g.release(1, nil)
	if err := second.Wait(); err != nil {
		t.Fatal(err)
	}
	if e.State() != Committed {
		t.Errorf("state = %v", e.State())
	}
	if calls := g.submitted(); !reflect.DeepEqual(calls, [][]int{{3, 1, 2}, {2, 3, 1}}) {
		t.Errorf("submitted %v", calls)
	}
}

func TestMoveTo(t *testing.T) {
	g := newGate()
	g.release(0, nil)
	e := New[row](g.commit, nil)
	e.Load(abc)

	p, ok := e.MoveTo(context.Background(), 1, 2)
	if !ok {
		t.Fatal("MoveTo reported no-op")
	}
	if err := p.Wait(); err != nil {
		t.Fatal(err)
	}
	if got := IDs(e.Items()); !reflect.DeepEqual(got, []int{2, 3, 1}) {
		t.Errorf("ids = %v", got)
	}
	if _, ok := e.MoveTo(context.Background(), 1, 7); ok {
		t.Error("out of range index should be a no-op")
	}
}
