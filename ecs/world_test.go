package ecs

import (
	"testing"

	"pgregory.net/rapid"
)

func TestWorldEntityLifecycle(t *testing.T) {
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
				ents = append(ents, w.CreateEntity())
			}
			if w.Count() != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, w.Count())
			}
			if c.destroyIndex >= 0 {
				e := ents[c.destroyIndex]
				if !w.DestroyEntity(e) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(e) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(e) {
					t.Fatalf("DestroyEntity should return false for a stale handle")
				}
				reused := w.CreateEntity()
				if reused.id() != e.id() || reused.generation() == e.generation() {
					t.Fatalf("expected slot %d reused with a new generation, got %s", e.id(), reused)
				}
			}
		})
	}
}

func TestSparseSetSwapRemove(t *testing.T) {
	w := NewWorld()
	var s SparseSet[string]
	a, b, c := w.CreateEntity(), w.CreateEntity(), w.CreateEntity()
	s.Set(a, "a")
	s.Set(b, "b")
	s.Set(c, "c")

	if !s.Remove(a) {
		t.Fatalf("Remove should report a present member")
	}
	if s.Remove(a) {
		t.Fatalf("second Remove should be a no-op")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", s.Len())
	}
	for e, want := range map[Entity]string{b: "b", c: "c"} {
		got, ok := s.Get(e)
		if !ok || got != want {
			t.Fatalf("Get(%s) = %q, %v; want %q", e, got, ok, want)
		}
	}

	w.DestroyEntity(b)
	stale := b
	fresh := w.CreateEntity()
	if s.Has(fresh) {
		t.Fatalf("a new generation must not alias the stale member")
	}
	if !s.Has(stale) {
		t.Fatalf("stale handle still stored until removed")
	}
}

func TestSparseSetMatchesMap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := NewWorld()
		ents := make([]Entity, 16)
		for i := range ents {
			ents[i] = w.CreateEntity()
		}
		var s SparseSet[int]
		model := map[Entity]int{}
		ops := rapid.SliceOfN(rapid.IntRange(0, 31), 0, 200).Draw(t, "ops")
		for i, op := range ops {
			e := ents[op%16]
			if op < 16 {
				s.Set(e, i)
				model[e] = i
			} else {
				_, inModel := model[e]
				if s.Remove(e) != inModel {
					t.Fatalf("Remove(%s) disagreed with model", e)
				}
				delete(model, e)
			}
		}
		if s.Len() != len(model) {
			t.Fatalf("len %d, model %d", s.Len(), len(model))
		}
		for e, v := range model {
			got, ok := s.Get(e)
			if !ok || got != v {
				t.Fatalf("Get(%s) = %d, %v; want %d", e, got, ok, v)
			}
		}
	})
}

func TestSchedulerOrder(t *testing.T) {
	w := NewWorld()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		w.AddSystem(SystemFunc(func(float64) { order = append(order, i) }))
	}
	w.Update(16)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
	if w.Elapsed() != 16 || w.Frames() != 1 {
		t.Fatalf("unexpected clock %v/%d", w.Elapsed(), w.Frames())
	}
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue[int]()
	q.Emit(1)
	q.Emit(2)
	got := q.Drain()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected drain %v", got)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}
