package model

import "testing"

func TestState_IsActive(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateIdle, false},
		{StateRunning, true},
		{StateCompleted, false},
		{StateFailed, false},
		{StateCancelled, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("State(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateIdle, false},
		{StateRunning, false},
		{StateCompleted, true},
		{StateFailed, true},
		{StateCancelled, true},
	}

	for _, test := range tests {
		result := test.state.IsTerminal()
		if result != test.expected {
			t.Errorf("State(%s).IsTerminal() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestState_String(t *testing.T) {
	state := StateRunning
	expected := "Running"
	result := state.String()

	if result != expected {
		t.Errorf("State.String() = %s, expected %s", result, expected)
	}
}
