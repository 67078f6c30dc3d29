package agent

import (
	"testing"

	"github.com/paulmach/orb"
)

// stubWorld scripts the draws and neighbor sets an agent sees.
type stubWorld struct {
	neighbors  []Agent
	draws      []float64
	drawIdx    int
	greets     [][2]ID
	lastCenter orb.Point
	lastRadius float64
	queried    bool
}

func (w *stubWorld) Within(center orb.Point, radius float64) []Agent {
	w.lastCenter = center
	w.lastRadius = radius
	w.queried = true
	return w.neighbors
}

func (w *stubWorld) Uniform(min, max float64) float64 {
	if w.drawIdx < len(w.draws) {
		v := w.draws[w.drawIdx]
		w.drawIdx++
		return v
	}
	return min
}

func (w *stubWorld) Greet(from, to Agent) {
	w.greets = append(w.greets, [2]ID{from.ID(), to.ID()})
}

func TestWalkerMoves(t *testing.T) {
	a := NewWalker("w", orb.Point{1, 2}, Interval{Min: -5, Max: 5}, 2)
	w := &stubWorld{draws: []float64{3, -4}}

	a.Step(w)

	got := a.Position()
	if got[0] != 4 || got[1] != -2 {
		t.Errorf("expected position (4, -2), got %v", got)
	}
}

func TestWalkerQueriesAtNewPosition(t *testing.T) {
	a := NewWalker("w", orb.Point{0, 0}, Interval{Min: -5, Max: 5}, 2.5)
	w := &stubWorld{draws: []float64{1, 1}}

	a.Step(w)

	if !w.queried {
		t.Fatal("walker did not query the world")
	}
	if w.lastCenter != (orb.Point{1, 1}) {
		t.Errorf("expected query at (1, 1), got %v", w.lastCenter)
	}
	if w.lastRadius != 2.5 {
		t.Errorf("expected query radius 2.5, got %f", w.lastRadius)
	}
}

func TestWalkerGreetsNeighbors(t *testing.T) {
	a := NewWalker("w", orb.Point{0, 0}, Interval{}, 2)
	b := NewSilent("b", orb.Point{1, 0})
	c := NewSilent("c", orb.Point{0, 1})
	w := &stubWorld{neighbors: []Agent{a, b, c}}

	a.Step(w)

	if !a.Greeted() {
		t.Error("walker with neighbors should be greeted")
	}
	if len(w.greets) != 2 {
		t.Fatalf("expected 2 greet events, got %d", len(w.greets))
	}
	for _, g := range w.greets {
		if g[0] != "w" {
			t.Errorf("greet emitted by %q, want w", g[0])
		}
		if g[1] == "w" {
			t.Error("walker greeted itself")
		}
	}
}

func TestWalkerSelfOnlyResult(t *testing.T) {
	a := NewWalker("w", orb.Point{0, 0}, Interval{}, 2)
	w := &stubWorld{neighbors: []Agent{a}}

	a.Step(w)

	if a.Greeted() {
		t.Error("self-only query result must not set greeted")
	}
	if len(w.greets) != 0 {
		t.Errorf("expected no greet events, got %d", len(w.greets))
	}
}

func TestWalkerEmptyResult(t *testing.T) {
	a := NewWalker("w", orb.Point{0, 0}, Interval{}, 2)
	w := &stubWorld{}

	a.Step(w)

	if a.Greeted() {
		t.Error("empty query result must not set greeted")
	}
}

func TestWalkerGreetedMonotonic(t *testing.T) {
	a := NewWalker("w", orb.Point{0, 0}, Interval{}, 2)
	b := NewSilent("b", orb.Point{1, 0})

	a.Step(&stubWorld{neighbors: []Agent{a, b}})
	if !a.Greeted() {
		t.Fatal("expected greeted after meeting a neighbor")
	}

	// Alone for the rest of time; the flag must not reset.
	for i := 0; i < 10; i++ {
		a.Step(&stubWorld{})
		if !a.Greeted() {
			t.Fatal("greeted flag reset")
		}
	}
}

func TestSilentDoesNothing(t *testing.T) {
	a := NewSilent("s", orb.Point{3, 4})
	w := &stubWorld{neighbors: []Agent{a}}

	for i := 0; i < 5; i++ {
		a.Step(w)
	}

	if a.Position() != (orb.Point{3, 4}) {
		t.Errorf("silent agent moved to %v", a.Position())
	}
	if a.Greeted() {
		t.Error("silent agent greeted")
	}
	if w.queried {
		t.Error("silent agent queried the world")
	}
	if len(w.greets) != 0 {
		t.Error("silent agent emitted greet events")
	}
}
