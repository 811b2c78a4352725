package client

import "testing"

func TestStateTransitions(t *testing.T) {
	allowed := [][2]State{
		{StateIdle, StateConnecting},
		{StateIdle, StateClosed},
		{StateConnecting, StateOpen},
		{StateConnecting, StateFailed},
		{StateConnecting, StateClosed},
		{StateOpen, StateClosed},
		{StateOpen, StateFailed},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("%v -> %v should be allowed", tr[0], tr[1])
		}
	}

	denied := [][2]State{
		{StateIdle, StateOpen},
		{StateOpen, StateConnecting},
		{StateClosed, StateConnecting},
		{StateClosed, StateOpen},
		{StateFailed, StateConnecting},
		{StateFailed, StateOpen},
	}
	for _, tr := range denied {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("%v -> %v should be denied", tr[0], tr[1])
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []State{StateClosed, StateFailed} {
		if !s.Terminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
	for _, s := range []State{StateIdle, StateConnecting, StateOpen} {
		if s.Terminal() {
			t.Errorf("%v should not be terminal", s)
		}
	}
}
