package ecs

import (
	"testing"

	"github.com/milk9111/snake/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return false the second time")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must not equal the stale handle")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if _, ok := Get(w, e2, h1.Kind()); ok {
					t.Fatalf("e2 should not have the int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				a, b := "a", "b"
				if err := Add(w, e1, h2.Kind(), &a); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), &b)
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	t.Run("errors", func(t *testing.T) {
		if err := Add(w, e1, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
			t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
		}
		if err := Add[int](w, e1, h1.Kind(), nil); err != component.ErrNilComponent {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
		if Remove(w, e1, h1.Kind()) {
			t.Fatalf("removing a missing component should report false")
		}
	})
}

func TestForEachSlotOrderAndDestroy(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	var ents []Entity
	for i := 0; i < 5; i++ {
		e := CreateEntity(w)
		ents = append(ents, e)
		if i == 2 {
			continue
		}
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	// force a swap-remove so dense order differs from slot order
	Remove(w, ents[0], h.Kind())
	if err := Add(w, ents[0], h.Kind(), intPtr(0)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var seen []int
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		seen = append(seen, *v)
		DestroyEntity(w, e)
	})

	want := []int{0, 1, 3, 4}
	if len(seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, seen)
		}
	}
	if len(Entities(w)) != 1 {
		t.Fatalf("expected only the untagged entity to survive, got %v", Entities(w))
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				for _, err := range []error{
					Add(w, e1, ka, intPtr(1)),
					Add(w, e2, ka, intPtr(2)),
					Add(w, e2, kb, intPtr(3)),
					Add(w, e2, kc, intPtr(5)),
					Add(w, e3, kb, intPtr(4)),
				} {
					if err != nil {
						t.Fatal(err)
					}
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0].id() != e2.id() {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]()
				kb := component.NewComponentKind[int]()
				kc := component.NewComponentKind[int]()

				if err := Add(w, e, ka, intPtr(1)); err != nil {
					t.Fatal(err)
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	if _, ok := First(w, h.Kind()); ok {
		t.Fatalf("expected no entity in an empty world")
	}

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	_ = Add(w, e2, h.Kind(), intPtr(2))
	_ = Add(w, e1, h.Kind(), intPtr(1))

	got, ok := First(w, h.Kind())
	if !ok || got != e1 {
		t.Fatalf("expected %v, got %v ok=%v", e1, got, ok)
	}
}

type countingSystem struct{ calls int }

func (c *countingSystem) Update(*World) { c.calls++ }

func TestSchedulerAndEvents(t *testing.T) {
	w := NewWorld()
	a, b := &countingSystem{}, &countingSystem{}
	fnCalls := 0
	s := NewScheduler()
	s.Add("a", a)
	s.Add("nil", nil)
	s.Add("b", b)
	s.Add("fn", SystemFunc(func(*World) { fnCalls++ }))

	s.Update(w)
	s.Update(w)

	if a.calls != 2 || b.calls != 2 || fnCalls != 2 {
		t.Fatalf("expected every system to run twice, got %d, %d and %d", a.calls, b.calls, fnCalls)
	}
	timings := s.Timings()
	if len(timings) != 3 || timings[0].Name != "a" || timings[1].Runs != 2 {
		t.Fatalf("unexpected timings %+v", timings)
	}

	w.Events().Push(Event{Type: EventAteFood})
	if w.Events().Len() != 1 {
		t.Fatalf("expected one queued event")
	}
	if evs := w.Events().Drain(); len(evs) != 1 || evs[0].Type != EventAteFood {
		t.Fatalf("unexpected drain %v", evs)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}
