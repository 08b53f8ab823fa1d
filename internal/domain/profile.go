package domain

import "time"

// Profile is a named set of mods stored under the manager directory.
type Profile struct {
	Name   string
	Path   string
	Active bool
}

// SwitchPhase is the step a profile switch has reached.
type SwitchPhase string

const (
	SwitchStash   SwitchPhase = "stash"   // moving the current set out of the mods root
	SwitchRestore SwitchPhase = "restore" // moving the target set into the mods root
	SwitchDone    SwitchPhase = "done"
)

// SwitchRecord is a journal entry for one profile switch.
type SwitchRecord struct {
	ID         string
	From       string
	To         string
	Phase      SwitchPhase
	StartedAt  time.Time
	FinishedAt time.Time // zero until the switch completes
}

// Pending reports whether the switch never reached the done phase.
func (r SwitchRecord) Pending() bool {
	return r.Phase != SwitchDone
}
