package core

import "testing"

func TestInputFrameMoveIntent(t *testing.T) {
	tests := []struct {
		name     string
		actions  []Action
		move     Vec2
		expected Vec2
	}{
		{"none", nil, Vec2{}, Vec2{}},
		{"right", []Action{ActionRight}, Vec2{}, V(1, 0)},
		{"up-left", []Action{ActionUp, ActionLeft}, Vec2{}, V(-1, -1)},
		{"opposites cancel", []Action{ActionLeft, ActionRight}, Vec2{}, V(0, 0)},
		{"explicit move wins", []Action{ActionLeft}, V(0.5, 0.5), V(0.5, 0.5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.actions {
				f.Set(a)
			}
			f.Move = tc.move
			if got := f.MoveIntent(); got != tc.expected {
				t.Errorf("MoveIntent() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUsePotion)
	f.Move = V(1, 0)

	c := f.Clone()
	f.Clear()

	if f.Has(ActionUsePotion) || !f.Move.IsZero() {
		t.Error("Clear should reset actions and move")
	}
	if !c.Has(ActionUsePotion) || c.Move != V(1, 0) {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("same seed should produce same sequence")
		}
	}

	c := NewRNG(7)
	c.Next()
	d := NewRNG(1)
	d.SetState(c.State())
	if c.Float64() != d.Float64() {
		t.Error("restored state should continue the same sequence")
	}

	for i := 0; i < 1000; i++ {
		f := a.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %f out of [0, 1)", f)
		}
		if n := a.Intn(5); n < 0 || n >= 5 {
			t.Fatalf("Intn(5) = %d out of range", n)
		}
	}
}
