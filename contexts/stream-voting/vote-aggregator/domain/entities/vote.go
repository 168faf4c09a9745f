package entities

import (
	"encoding/json"
	"time"
)

// Vote is one option chosen by a participant during a session step. An empty
// VotedBy marks an anonymous vote.
type Vote struct {
	VoteID     string
	SessionID  string
	StepID     string
	OptionKey  string
	OptionMeta json.RawMessage
	VotedBy    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (v Vote) Anonymous() bool {
	return v.VotedBy == ""
}

// StepFilter selects votes by step. The zero value matches every step.
type StepFilter struct {
	stepID  string
	enabled bool
}

func AnyStep() StepFilter {
	return StepFilter{}
}

func OnlyStep(stepID string) StepFilter {
	return StepFilter{stepID: stepID, enabled: true}
}

// Step reports the selected step and whether the filter is active.
func (f StepFilter) Step() (string, bool) {
	return f.stepID, f.enabled
}

// Matches compares exactly; a vote without a step compares as "".
func (f StepFilter) Matches(stepID string) bool {
	return !f.enabled || f.stepID == stepID
}

// OptionTally is the running count of one option within a session view.
type OptionTally struct {
	OptionKey   string
	Votes       int
	FirstVoteAt time.Time
	LastVoteAt  time.Time
}
