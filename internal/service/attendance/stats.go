package attendance

import (
	"time"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/schedule"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/clock"
)

// checkoutToleranceMinutes is the band around the planned shift end
// treated as on time: neither early leave nor overtime.
const checkoutToleranceMinutes = 60

// ComputeShiftStats derives one slot's late/early/overtime minutes from
// the plan and the actual stamps.
//
// Tie-break rules:
//   - no plan means all metrics zero and hasSchedule false
//   - lateness uses check-in only; arriving early never earns credit
//   - checkout within ±60 minutes of the planned end is on time;
//     outside the band the full distance counts, not just the excess
//   - a missing stamp contributes zero (the missing-schedule/stamp
//     count upstream surfaces it instead)
func ComputeShiftStats(plan *schedule.ShiftPlan, checkIn, checkOut *time.Time, loc *time.Location) (lateMinutes, earlyMinutes, overtimeMinutes int, hasSchedule bool) {
	if plan == nil {
		return 0, 0, 0, false
	}

	plannedStart, err := clock.ParseHHMM(plan.Start)
	if err != nil {
		return 0, 0, 0, false
	}
	plannedEnd, err := clock.ParseHHMM(plan.End)
	if err != nil {
		return 0, 0, 0, false
	}

	if checkIn != nil {
		if diff := clock.MinuteOfDay(*checkIn, loc) - plannedStart; diff > 0 {
			lateMinutes = diff
		}
	}

	if checkOut != nil {
		diff := clock.MinuteOfDay(*checkOut, loc) - plannedEnd
		switch {
		case diff > checkoutToleranceMinutes:
			overtimeMinutes = diff
		case diff < -checkoutToleranceMinutes:
			earlyMinutes = -diff
		}
	}

	return lateMinutes, earlyMinutes, overtimeMinutes, true
}

// applyStats copies the plan and recomputed stats onto a slot.
func applyStats(slot attendance.Slot, plan *schedule.ShiftPlan, loc *time.Location) attendance.Slot {
	late, early, overtime, hasSchedule := ComputeShiftStats(plan, slot.CheckIn, slot.CheckOut, loc)
	slot.LateMinutes = late
	slot.EarlyMinutes = early
	slot.OvertimeMinutes = overtime
	slot.HasSchedule = hasSchedule
	if plan != nil {
		start, end := plan.Start, plan.End
		slot.PlannedStart = &start
		slot.PlannedEnd = &end
	}
	return slot
}
