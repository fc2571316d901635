package domain

import (
	"testing"
	"time"
)

func TestParticipantDefaultsOn(t *testing.T) {
	p := NewParticipant("Alice", time.Now())
	if p.Mic != StateOn || p.Camera != StateOn {
		t.Fatalf("expected mic and camera on at join, got %+v", p)
	}
}

func TestParticipantApply(t *testing.T) {
	cases := []struct {
		action     string
		recognised bool
		mic        string
		camera     string
	}{
		{ActionMute, true, StateOff, StateOn},
		{ActionUnmute, true, StateOn, StateOn},
		{ActionVideoOff, true, StateOn, StateOff},
		{ActionVideoOn, true, StateOn, StateOn},
		{"wave", false, StateOn, StateOn},
		{"", false, StateOn, StateOn},
	}

	for _, tc := range cases {
		p := NewParticipant("Alice", time.Now())
		if got := p.Apply(tc.action); got != tc.recognised {
			t.Fatalf("action %q: recognised=%v, want %v", tc.action, got, tc.recognised)
		}
		if p.Mic != tc.mic || p.Camera != tc.camera {
			t.Fatalf("action %q: state mic=%q camera=%q, want mic=%q camera=%q",
				tc.action, p.Mic, p.Camera, tc.mic, tc.camera)
		}
	}
}

func TestParticipantStateIsIndependent(t *testing.T) {
	p := NewParticipant("Alice", time.Now())
	p.Apply(ActionMute)
	p.Apply(ActionVideoOff)
	if p.Mic != StateOff || p.Camera != StateOff {
		t.Fatalf("expected both off, got %+v", p)
	}
	p.Apply(ActionUnmute)
	if p.Camera != StateOff {
		t.Fatalf("unmute must not touch the camera state")
	}
}
