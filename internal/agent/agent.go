// Package agent defines the stepped entities of the simulation: a
// shared identity/position/greeted core and the behavior variants
// layered on top of it.
package agent

import "github.com/paulmach/orb"

// ID uniquely names an agent within a model.
type ID string

// World is the surface a model presents to a stepping agent: spatial
// queries, the model's random source, and greet emission. Queries
// answer against positions as of the start of the current tick.
type World interface {
	// Within returns every agent within radius of center, the caller
	// included when its own indexed position qualifies.
	Within(center orb.Point, radius float64) []Agent
	// Uniform draws from [min, max).
	Uniform(min, max float64) float64
	// Greet reports a greet event to the model's observers.
	Greet(from, to Agent)
}

// Agent is a positioned, identified entity that takes one step per
// tick. Step may move the agent and flip its greeted flag; the flag is
// monotonic and never resets.
type Agent interface {
	ID() ID
	Position() orb.Point
	Greeted() bool
	Step(w World)
}

// core carries the state every variant shares.
type core struct {
	id      ID
	pos     orb.Point
	greeted bool
}

func (c *core) ID() ID              { return c.id }
func (c *core) Position() orb.Point { return c.pos }
func (c *core) Greeted() bool       { return c.greeted }

// Silent is the do-nothing variant: it never moves and never greets.
// It exists to exercise the scheduling contract on its own.
type Silent struct {
	core
}

func NewSilent(id ID, pos orb.Point) *Silent {
	return &Silent{core{id: id, pos: pos}}
}

func (s *Silent) Step(World) {}
