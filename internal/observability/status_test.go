package observability

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	SetPhase("EXECUTING", "Search in the Electronics category")

	phase, step, since := Status()
	if phase != "EXECUTING" {
		t.Errorf("phase: got %q", phase)
	}
	if step != "Search in the Electronics category" {
		t.Errorf("active step: got %q", step)
	}
	if since.IsZero() {
		t.Error("since should be set")
	}

	SetPhase("DONE", "")
	phase, step, _ = Status()
	if phase != "DONE" || step != "" {
		t.Errorf("update not applied: %q %q", phase, step)
	}
}
