// Package metrics provides run-level reductions over tick snapshots.
package metrics

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/avelent/mingle/internal/agent"
)

// GreetedFraction tracks the share of agents whose greeted flag is set,
// as of the most recent tick.
type GreetedFraction struct {
	frac float64
}

func NewGreetedFraction() *GreetedFraction { return &GreetedFraction{} }

func (g *GreetedFraction) Name() string { return "greeted_fraction" }

func (g *GreetedFraction) Observe(tick int, agents []agent.Agent) {
	if len(agents) == 0 {
		g.frac = 0
		return
	}
	n := 0
	for _, a := range agents {
		if a.Greeted() {
			n++
		}
	}
	g.frac = float64(n) / float64(len(agents))
}

func (g *GreetedFraction) Value() float64 { return g.frac }
func (g *GreetedFraction) Reset()         { g.frac = 0 }

// GreetedCount tracks the absolute number of greeted agents as of the
// most recent tick.
type GreetedCount struct {
	count int
}

func NewGreetedCount() *GreetedCount { return &GreetedCount{} }

func (g *GreetedCount) Name() string { return "greeted_count" }

func (g *GreetedCount) Observe(tick int, agents []agent.Agent) {
	n := 0
	for _, a := range agents {
		if a.Greeted() {
			n++
		}
	}
	g.count = n
}

func (g *GreetedCount) Value() float64 { return float64(g.count) }
func (g *GreetedCount) Reset()         { g.count = 0 }

// MeanStep averages per-tick displacement over all agents and ticks.
type MeanStep struct {
	prev    map[agent.ID]orb.Point
	sum     float64
	samples int
}

func NewMeanStep() *MeanStep {
	return &MeanStep{prev: make(map[agent.ID]orb.Point)}
}

func (m *MeanStep) Name() string { return "mean_step" }

func (m *MeanStep) Observe(tick int, agents []agent.Agent) {
	for _, a := range agents {
		cur := a.Position()
		if p, ok := m.prev[a.ID()]; ok {
			m.sum += planar.Distance(p, cur)
			m.samples++
		}
		m.prev[a.ID()] = cur
	}
}

func (m *MeanStep) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanStep) Reset() {
	m.prev = make(map[agent.ID]orb.Point)
	m.sum = 0
	m.samples = 0
}
