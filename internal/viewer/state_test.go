package viewer

import (
	"encoding/json"
	"testing"
)

func TestState_TextRoundTrip(t *testing.T) {
	for _, state := range []State{StateInput, StateLoading, StateViewer} {
		text, err := state.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error = %v", state, err)
		}

		var got State
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != state {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, state)
		}
	}

	var s State
	if err := s.UnmarshalText([]byte("paused")); err == nil {
		t.Error("unknown state name should fail")
	}
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	in := Snapshot{State: StateViewer, SessionID: "s-1", Title: "Demo", Source: "paste"}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", data, err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
