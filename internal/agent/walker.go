package agent

import "github.com/paulmach/orb"

// Interval is a half-open range [Min, Max) for uniform draws.
type Interval struct {
	Min float64
	Max float64
}

// Walker random-walks and greets everyone it finds nearby. Each step
// it displaces both axes by independent draws over its move interval,
// then queries at its new position. The index still holds start-of-tick
// positions at that moment, so no in-tick move of another agent is
// visible to it.
type Walker struct {
	core
	move   Interval
	radius float64
}

func NewWalker(id ID, pos orb.Point, move Interval, radius float64) *Walker {
	return &Walker{
		core:   core{id: id, pos: pos},
		move:   move,
		radius: radius,
	}
}

func (a *Walker) Step(w World) {
	dx := w.Uniform(a.move.Min, a.move.Max)
	dy := w.Uniform(a.move.Min, a.move.Max)
	a.pos = orb.Point{a.pos[0] + dx, a.pos[1] + dy}

	for _, nb := range w.Within(a.pos, a.radius) {
		if nb.ID() == a.id {
			continue
		}
		w.Greet(a, nb)
		a.greeted = true
	}
}
