// Package sim orchestrates the agent model: an ordered scheduler, a
// proximity index, and a tick loop.
//
// One tick is a full synchronous pass over every agent in registration
// order, followed by an index rebuild:
//
//	m, _ := sim.New(sim.DefaultConfig())
//	m.Populate(m.WalkerFactory(), 20)
//	for i := 0; i < 100; i++ {
//	    m.Step()
//	}
//
// Because the index is rebuilt only after the pass completes, every
// proximity query inside a tick sees positions as of the start of that
// tick. An agent that moves into range mid-tick is not seen until the
// next tick, so mutual greet-backs within a single tick cannot happen.
//
// [Observer] and [Metric] hook observation in without feeding back:
// recorders, renderers, and stream servers all attach through them.
package sim
