package recorder

import (
	"testing"

	"github.com/paulmach/orb"

	"github.com/avelent/mingle/internal/agent"
)

func TestRecorderRows(t *testing.T) {
	r := New()
	a := agent.NewSilent("a", orb.Point{1, 2})
	b := agent.NewSilent("b", orb.Point{-3, 4})

	r.OnTick(1, []agent.Agent{a, b})
	r.OnTick(2, []agent.Agent{a, b})

	rows := r.Records()
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows (2 agents x 2 ticks), got %d", len(rows))
	}

	first := rows[0]
	if first.Tick != 1 || first.ID != "a" || first.X != 1 || first.Y != 2 || first.Greeted {
		t.Errorf("unexpected first row: %+v", first)
	}
	last := rows[3]
	if last.Tick != 2 || last.ID != "b" || last.X != -3 || last.Y != 4 {
		t.Errorf("unexpected last row: %+v", last)
	}
}

func TestRecorderGreets(t *testing.T) {
	r := New()
	a := agent.NewSilent("a", orb.Point{})
	b := agent.NewSilent("b", orb.Point{})

	r.OnGreet(3, a, b)
	r.OnGreet(3, b, a)

	greets := r.Greets()
	if len(greets) != 2 {
		t.Fatalf("expected 2 greet events, got %d", len(greets))
	}
	if greets[0].Tick != 3 || greets[0].From != "a" || greets[0].To != "b" {
		t.Errorf("unexpected first event: %+v", greets[0])
	}
	if greets[1].From != "b" || greets[1].To != "a" {
		t.Errorf("unexpected second event: %+v", greets[1])
	}
}

func TestRecorderEmpty(t *testing.T) {
	r := New()
	if len(r.Records()) != 0 || len(r.Greets()) != 0 {
		t.Error("fresh recorder should be empty")
	}
}
