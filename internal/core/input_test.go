package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionJump)
	f.Axis = -0.5
	if !f.Has(ActionJump) {
		t.Error("Set(Jump) should be visible through Has")
	}

	clone := f.Clone()
	f.Clear()
	if f.Has(ActionJump) || f.Axis != 0 {
		t.Error("Clear should drop actions and axis")
	}
	if !clone.Has(ActionJump) || clone.Axis != -0.5 {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionAnswerIndex(t *testing.T) {
	tests := []struct {
		action Action
		index  int
		ok     bool
	}{
		{ActionAnswer1, 0, true},
		{ActionAnswer4, 3, true},
		{ActionJump, 0, false},
	}
	for _, tc := range tests {
		idx, ok := tc.action.AnswerIndex()
		if idx != tc.index || ok != tc.ok {
			t.Errorf("%v.AnswerIndex() = (%d, %v), expected (%d, %v)", tc.action, idx, ok, tc.index, tc.ok)
		}
	}
	if ActionAnswer3.String() != "Answer3" {
		t.Errorf("ActionAnswer3.String() = %q", ActionAnswer3.String())
	}
}
