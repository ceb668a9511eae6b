package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/schedule"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.Repository
	scheduleRepo schedule.Repository
	loc          *time.Location
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.Repository,
	scheduleRepo schedule.Repository,
	loc *time.Location,
) attendance.Service {
	return &AttendanceServiceImpl{
		tx:           tx,
		Repository:   attendanceRepo,
		scheduleRepo: scheduleRepo,
		loc:          loc,
	}
}

// Stamp implements attendance.Service. The slot check-and-set, the plan
// copy and the stats recompute run in one transaction so a duplicate
// punch can never half-apply.
func (a *AttendanceServiceImpl) Stamp(ctx context.Context, req attendance.StampRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	at := time.Now().UTC()
	if req.At != nil {
		at = req.At.UTC()
	}
	source := req.Source
	if source == "" {
		source = attendance.SourceChat
	}

	err := a.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := a.Repository.Ensure(ctx, req.EmployeeNo, req.Date); err != nil {
			return err
		}

		if err := a.Repository.StampSlot(ctx, req.EmployeeNo, req.Date, req.Shift, req.Action, at, source); err != nil {
			return err
		}

		plan, err := a.scheduleRepo.GetShiftPlan(ctx, req.EmployeeNo, req.Date, req.Shift)
		if err != nil {
			return fmt.Errorf("failed to get shift plan: %w", err)
		}
		if plan == nil {
			// Attendance recording is never blocked by missing planning
			// data; the slot just stays unscored.
			return nil
		}

		rec, err := a.Repository.Get(ctx, req.EmployeeNo, req.Date)
		if err != nil {
			return fmt.Errorf("failed to reload attendance record: %w", err)
		}

		slot := applyStats(rec.SlotFor(req.Shift), plan, a.loc)
		if err := a.Repository.UpdateSlotStats(ctx, req.EmployeeNo, req.Date, req.Shift, slot); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}

	return a.Repository.Get(ctx, req.EmployeeNo, req.Date)
}

// Get implements attendance.Service.
func (a *AttendanceServiceImpl) Get(ctx context.Context, employeeNo, date string) (attendance.Record, error) {
	return a.Repository.Get(ctx, employeeNo, date)
}
