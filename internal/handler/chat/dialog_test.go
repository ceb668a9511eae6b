package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
)

func TestDialogTransitions(t *testing.T) {
	state := newMakeupState()
	require.True(t, state.valid())
	assert.Equal(t, StageAwaitShift, state.Stage)

	state, err := state.withShift(attendance.ShiftNight)
	require.NoError(t, err)
	require.True(t, state.valid())
	assert.Equal(t, StageAwaitAction, state.Stage)

	state, err = state.withAction(attendance.ActionCheckOut)
	require.NoError(t, err)
	require.True(t, state.valid())
	assert.Equal(t, StageAwaitReason, state.Stage)
	assert.Equal(t, attendance.ShiftNight, state.Shift)
	assert.Equal(t, attendance.ActionCheckOut, state.Action)
}

func TestDialogRejectsSkippedStages(t *testing.T) {
	state := newMakeupState()

	_, err := state.withAction(attendance.ActionCheckIn)
	assert.Error(t, err, "action before shift must fail")

	advanced, err := state.withShift(attendance.ShiftMorning)
	require.NoError(t, err)
	_, err = advanced.withShift(attendance.ShiftNight)
	assert.Error(t, err, "second shift answer must fail")
}

func TestDialogValidity(t *testing.T) {
	assert.False(t, State{}.valid(), "zero state is not a dialog")
	assert.False(t, State{Flow: flowMakeup, Stage: StageAwaitReason}.valid(),
		"reason stage without collected answers is corrupt")
	assert.False(t, State{Flow: "other", Stage: StageAwaitShift}.valid())
	assert.False(t, State{Flow: flowMakeup, Stage: StageAwaitShift, Shift: attendance.ShiftMorning}.valid(),
		"shift stage must not already hold a shift")
}
