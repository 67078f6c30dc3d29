// Package recorder captures per-tick observations of the agent set for
// later storage or export. Recording is append-only and never feeds
// back into the simulation.
package recorder

import (
	"github.com/avelent/mingle/internal/agent"
	"github.com/avelent/mingle/internal/sim"
)

// Record is one agent's state at the end of one tick.
type Record struct {
	Tick    int
	ID      string
	X       float64
	Y       float64
	Greeted bool
}

// Recorder accumulates one Record per agent per tick plus the greet
// event log. It implements sim.Observer.
type Recorder struct {
	records []Record
	greets  []sim.GreetEvent
}

func New() *Recorder { return &Recorder{} }

func (r *Recorder) OnTick(tick int, agents []agent.Agent) {
	for _, a := range agents {
		p := a.Position()
		r.records = append(r.records, Record{
			Tick:    tick,
			ID:      string(a.ID()),
			X:       p[0],
			Y:       p[1],
			Greeted: a.Greeted(),
		})
	}
}

func (r *Recorder) OnGreet(tick int, from, to agent.Agent) {
	r.greets = append(r.greets, sim.GreetEvent{
		Tick: tick,
		From: from.ID(),
		To:   to.ID(),
	})
}

// Records returns every row captured so far, oldest first.
func (r *Recorder) Records() []Record { return r.records }

// Greets returns the greet event log, oldest first.
func (r *Recorder) Greets() []sim.GreetEvent { return r.greets }
