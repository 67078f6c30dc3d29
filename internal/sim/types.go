package sim

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/avelent/mingle/internal/agent"
)

// Config fixes the world geometry and behavior parameters for one run.
type Config struct {
	Agents      int
	Seed        int64
	Ticks       int
	GreetRadius float64
	Move        agent.Interval
	Bounds      orb.Bound
	Index       string
}

func DefaultConfig() Config {
	return Config{
		Agents:      20,
		Seed:        1,
		Ticks:       100,
		GreetRadius: 2.0,
		Move:        agent.Interval{Min: -5, Max: 5},
		Bounds: orb.Bound{
			Min: orb.Point{-10, -10},
			Max: orb.Point{10, 10},
		},
		Index: "quadtree",
	}
}

func (c Config) Validate() error {
	if c.Agents < 0 {
		return fmt.Errorf("agent count must be >= 0, got %d", c.Agents)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("tick limit must be >= 0, got %d", c.Ticks)
	}
	if c.Move.Min > c.Move.Max {
		return fmt.Errorf("move range inverted: [%f, %f)", c.Move.Min, c.Move.Max)
	}
	if c.Bounds.Min[0] > c.Bounds.Max[0] || c.Bounds.Min[1] > c.Bounds.Max[1] {
		return fmt.Errorf("bounds inverted: %v", c.Bounds)
	}
	return nil
}

// Observer is notified synchronously as the model advances. Observers
// read state, they never feed back into it.
type Observer interface {
	// OnGreet fires once per greet event during a tick pass.
	OnGreet(tick int, from, to agent.Agent)
	// OnTick fires after a tick completes and the index is rebuilt.
	OnTick(tick int, agents []agent.Agent)
}

// Metric reduces tick snapshots to a single named value, reported at
// the end of a run.
type Metric interface {
	Name() string
	Observe(tick int, agents []agent.Agent)
	Value() float64
	Reset()
}

// GreetEvent records one agent acknowledging another within range.
type GreetEvent struct {
	Tick int
	From agent.ID
	To   agent.ID
}

// ErrNotPopulated is returned when a model is stepped before Populate.
var ErrNotPopulated = errors.New("sim: model stepped before populate")

// DuplicateIDError reports a second registration of the same identity.
type DuplicateIDError struct {
	ID agent.ID
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("sim: duplicate agent id %q", string(e.ID))
}
