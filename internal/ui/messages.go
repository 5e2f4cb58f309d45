package ui

import (
	"time"

	"ptop/internal/dispatch"
	"ptop/internal/model"
)

// tickMsg fires on the refresh interval.
type tickMsg time.Time

// snapshotMsg carries a completed sample pass back into the session loop.
// Sampling runs in a background tea.Cmd; this message is the only way its
// result touches shared state.
type snapshotMsg struct {
	snap model.Snapshot
	err  error
}

// killResultMsg carries a dispatch outcome back into the session loop.
type killResultMsg struct {
	outcome dispatch.Outcome
}
