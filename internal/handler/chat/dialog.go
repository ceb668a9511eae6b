package chat

import (
	"fmt"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
)

// Stage is where a multi-step dialog currently waits.
type Stage string

const (
	StageAwaitShift  Stage = "await_shift"
	StageAwaitAction Stage = "await_action"
	StageAwaitReason Stage = "await_reason"
)

const flowMakeup = "makeup"

// State is the dialog state persisted between webhook events. Only the
// fields the current stage has collected are set; advancing validates
// the transition so a stale or hand-crafted session cannot skip steps.
type State struct {
	Flow   string            `json:"flow"`
	Stage  Stage             `json:"stage"`
	Shift  attendance.Shift  `json:"shift,omitempty"`
	Action attendance.Action `json:"action,omitempty"`
}

func newMakeupState() State {
	return State{Flow: flowMakeup, Stage: StageAwaitShift}
}

func (s State) valid() bool {
	if s.Flow != flowMakeup {
		return false
	}
	switch s.Stage {
	case StageAwaitShift:
		return s.Shift == "" && s.Action == ""
	case StageAwaitAction:
		return s.Shift != "" && s.Action == ""
	case StageAwaitReason:
		return s.Shift != "" && s.Action != ""
	}
	return false
}

func (s State) withShift(shift attendance.Shift) (State, error) {
	if s.Stage != StageAwaitShift {
		return s, fmt.Errorf("unexpected shift answer at stage %s", s.Stage)
	}
	s.Shift = shift
	s.Stage = StageAwaitAction
	return s, nil
}

func (s State) withAction(action attendance.Action) (State, error) {
	if s.Stage != StageAwaitAction {
		return s, fmt.Errorf("unexpected action answer at stage %s", s.Stage)
	}
	s.Action = action
	s.Stage = StageAwaitReason
	return s, nil
}
