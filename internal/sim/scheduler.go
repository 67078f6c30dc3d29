package sim

import "github.com/avelent/mingle/internal/agent"

// Scheduler holds agents in registration order and steps each exactly
// once per pass. Registration order is step order for the lifetime of
// the model.
type Scheduler struct {
	order []agent.Agent
	ids   map[agent.ID]struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{ids: make(map[agent.ID]struct{})}
}

func (s *Scheduler) Add(a agent.Agent) error {
	if _, ok := s.ids[a.ID()]; ok {
		return DuplicateIDError{ID: a.ID()}
	}
	s.ids[a.ID()] = struct{}{}
	s.order = append(s.order, a)
	return nil
}

// Step runs one full pass in registration order.
func (s *Scheduler) Step(w agent.World) {
	for _, a := range s.order {
		a.Step(w)
	}
}

// Agents returns the schedule order. Callers must not reorder it.
func (s *Scheduler) Agents() []agent.Agent { return s.order }

func (s *Scheduler) Len() int { return len(s.order) }
