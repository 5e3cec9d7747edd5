package observability

import (
	"sync"
	"time"
)

// RunStatus tracks which control-loop phase the current run is in, for
// display alongside the log stream.
type RunStatus struct {
	mu         sync.RWMutex
	Phase      string
	ActiveStep string
	Since      time.Time
}

var globalStatus = &RunStatus{
	Phase: "IDLE",
	Since: time.Now(),
}

// SetPhase updates the global run status.
func SetPhase(phase, activeStep string) {
	globalStatus.mu.Lock()
	defer globalStatus.mu.Unlock()
	globalStatus.Phase = phase
	globalStatus.ActiveStep = activeStep
	globalStatus.Since = time.Now()
}

// Status retrieves a copy of the global run status.
func Status() (phase, activeStep string, since time.Time) {
	globalStatus.mu.RLock()
	defer globalStatus.mu.RUnlock()
	return globalStatus.Phase, globalStatus.ActiveStep, globalStatus.Since
}
