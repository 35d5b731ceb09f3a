package ecs

import "time"

type System interface {
	Update(w *World)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// Scheduler runs systems in insertion order and keeps the accumulated wall
// time spent in each one.
type Scheduler struct {
	systems []scheduled
}

type scheduled struct {
	name  string
	sys   System
	spent time.Duration
	runs  int
}

// Timing is the accumulated cost of one system.
type Timing struct {
	Name  string
	Total time.Duration
	Runs  int
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Add(name string, system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, scheduled{name: name, sys: system})
}

func (s *Scheduler) Update(w *World) {
	for i := range s.systems {
		entry := &s.systems[i]
		start := time.Now()
		entry.sys.Update(w)
		entry.spent += time.Since(start)
		entry.runs++
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	for _, entry := range s.systems {
		systems = append(systems, entry.sys)
	}
	return systems
}

func (s *Scheduler) Timings() []Timing {
	out := make([]Timing, 0, len(s.systems))
	for _, entry := range s.systems {
		out = append(out, Timing{Name: entry.name, Total: entry.spent, Runs: entry.runs})
	}
	return out
}
