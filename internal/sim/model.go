package sim

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"

	"github.com/avelent/mingle/internal/agent"
	"github.com/avelent/mingle/internal/space"
)

// Factory builds one agent. sample draws a fresh uniform position
// inside the configured bounds; factories are free to ignore it.
type Factory func(id agent.ID, sample func() orb.Point) agent.Agent

// entry pins an agent's position at index rebuild time. Queries made
// during a tick resolve against these pinned points, so an agent's
// in-tick move stays invisible to everyone until the next rebuild.
type entry struct {
	a agent.Agent
	p orb.Point
}

func (e entry) Point() orb.Point { return e.p }

// Model owns the agents, the scheduler, and the proximity index, and
// advances them one synchronous tick at a time. It implements
// agent.World for the duration of a tick pass.
type Model struct {
	cfg       Config
	sched     *Scheduler
	index     space.Index
	rng       *rand.Rand
	tick      int
	running   bool
	populated bool
	observers []Observer
	metrics   []Metric
}

func New(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Model{
		cfg:     cfg,
		sched:   NewScheduler(),
		index:   space.New(cfg.Index),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		running: true,
	}, nil
}

func (m *Model) AddObserver(o Observer) { m.observers = append(m.observers, o) }
func (m *Model) AddMetric(mt Metric)    { m.metrics = append(m.metrics, mt) }

// Populate creates count agents via factory, registers them with the
// scheduler and builds the first index snapshot. It moves the model
// from uninitialized to ready; Step fails until it has run.
func (m *Model) Populate(factory Factory, count int) error {
	if count < 0 {
		return fmt.Errorf("sim: agent count must be >= 0, got %d", count)
	}
	sample := func() orb.Point { return space.UniformPoint(m.rng, m.cfg.Bounds) }
	for i := 0; i < count; i++ {
		a := factory(agent.ID(fmt.Sprintf("agent-%d", i)), sample)
		if err := m.sched.Add(a); err != nil {
			return err
		}
	}
	m.rebuild()
	m.populated = true
	return nil
}

// WalkerFactory builds the default mobile-greeter population from the
// model config.
func (m *Model) WalkerFactory() Factory {
	return func(id agent.ID, sample func() orb.Point) agent.Agent {
		return agent.NewWalker(id, sample(), m.cfg.Move, m.cfg.GreetRadius)
	}
}

// SilentFactory builds agents that hold position and never greet.
func SilentFactory() Factory {
	return func(id agent.ID, sample func() orb.Point) agent.Agent {
		return agent.NewSilent(id, sample())
	}
}

// Step runs one tick: a full scheduler pass against the start-of-tick
// index, then an index rebuild from the new positions. Rebuilding only
// after the full pass is the postcondition everything else leans on:
// within one tick no agent can observe another's move, so greet-backs
// only ever happen on a later tick.
func (m *Model) Step() error {
	if !m.populated {
		return ErrNotPopulated
	}
	m.tick++
	m.sched.Step(m)
	m.rebuild()

	agents := m.sched.Agents()
	for _, mt := range m.metrics {
		mt.Observe(m.tick, agents)
	}
	for _, o := range m.observers {
		o.OnTick(m.tick, agents)
	}
	return nil
}

// Run steps until ticks have elapsed, the context is canceled, or the
// running flag is cleared. ticks == 0 means no tick limit.
func (m *Model) Run(ctx context.Context, ticks int) error {
	for i := 0; ticks == 0 || i < ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !m.running {
			return nil
		}
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) rebuild() {
	agents := m.sched.Agents()
	points := make([]orb.Pointer, len(agents))
	for i, a := range agents {
		points[i] = entry{a: a, p: a.Position()}
	}
	m.index.Rebuild(points)
}

// Within implements agent.World.
func (m *Model) Within(center orb.Point, radius float64) []agent.Agent {
	hits := m.index.Within(center, radius)
	out := make([]agent.Agent, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.(entry).a)
	}
	return out
}

// Uniform implements agent.World.
func (m *Model) Uniform(min, max float64) float64 {
	return space.Uniform(m.rng, min, max)
}

// Greet implements agent.World.
func (m *Model) Greet(from, to agent.Agent) {
	for _, o := range m.observers {
		o.OnGreet(m.tick, from, to)
	}
}

// Tick reports how many ticks have completed.
func (m *Model) Tick() int { return m.tick }

// Agents returns the schedule-ordered agent set as a read-only view.
func (m *Model) Agents() []agent.Agent { return m.sched.Agents() }

// Running is the stop hook for outer drive loops; the model never
// clears it itself.
func (m *Model) Running() bool     { return m.running }
func (m *Model) SetRunning(v bool) { m.running = v }

func (m *Model) Config() Config { return m.cfg }

// MetricValues collects the current value of every registered metric.
func (m *Model) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(m.metrics))
	for _, mt := range m.metrics {
		out[mt.Name()] = mt.Value()
	}
	return out
}
