package attendance

import "time"

type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftNight   Shift = "night"
)

var ShiftValues = []string{string(ShiftMorning), string(ShiftNight)}

type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

type Source string

const (
	SourceChat   Source = "chat"
	SourceMakeup Source = "makeup"
	SourceAdmin  Source = "admin"
)

// Slot holds one shift's stamps plus the plan that was in force when
// the stamps landed. Stats are recomputed whenever a stamp or plan
// changes; they are zero while HasSchedule is false.
type Slot struct {
	CheckIn         *time.Time
	CheckOut        *time.Time
	PlannedStart    *string // "HH:MM", copied from the shift plan at stamp time
	PlannedEnd      *string
	HasSchedule     bool
	LateMinutes     int
	EarlyMinutes    int
	OvertimeMinutes int
}

func (s Slot) HasStamp() bool {
	return s.CheckIn != nil || s.CheckOut != nil
}

// Record is one employee's attendance for one calendar date. Created
// lazily on first stamp, never deleted.
type Record struct {
	ID         string
	EmployeeNo string
	Date       string // "2006-01-02"
	Morning    Slot
	Night      Slot
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r Record) SlotFor(shift Shift) Slot {
	if shift == ShiftNight {
		return r.Night
	}
	return r.Morning
}

func (r Record) HasStamp() bool {
	return r.Morning.HasStamp() || r.Night.HasStamp()
}

// Day totals are the sum of the two shift slots.

func (r Record) LateMinutes() int {
	return r.Morning.LateMinutes + r.Night.LateMinutes
}

func (r Record) EarlyMinutes() int {
	return r.Morning.EarlyMinutes + r.Night.EarlyMinutes
}

func (r Record) OvertimeMinutes() int {
	return r.Morning.OvertimeMinutes + r.Night.OvertimeMinutes
}
