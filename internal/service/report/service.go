package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/domain/report"
	"github.com/shiftwork/attendance-bot-go/internal/domain/schedule"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/clock"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/validator"
)

// Full-attendance thresholds. A month breaks on the first rule that
// fires, checked in this order.
const (
	maxLateCount       = 4
	maxLateMinutes     = 10
	maxApprovedMakeups = 3
)

const (
	ReasonLateCount     = "late on more than 4 days"
	ReasonLateMinutes   = "more than 10 late minutes"
	ReasonMakeupLimit   = "more than 3 approved makeups"
	ReasonPersonalLeave = "personal leave taken"
)

type ReportServiceImpl struct {
	attendanceRepo attendance.Repository
	scheduleRepo   schedule.Repository
	makeupRepo     makeup.Repository
	leave          report.LeaveProvider
	logger         *slog.Logger
}

func NewReportService(
	attendanceRepo attendance.Repository,
	scheduleRepo schedule.Repository,
	makeupRepo makeup.Repository,
	leave report.LeaveProvider,
	logger *slog.Logger,
) report.Service {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		makeupRepo:     makeupRepo,
		leave:          leave,
		logger:         logger,
	}
}

// Summarize implements report.Service.
func (r *ReportServiceImpl) Summarize(ctx context.Context, employeeNo, yearMonth string) (report.MonthlySummary, error) {
	if validator.IsEmpty(employeeNo) {
		return report.MonthlySummary{}, validator.ValidationErrors{{Field: "employee_no", Message: "is required"}}
	}
	if _, ok := validator.IsValidMonth(yearMonth); !ok {
		return report.MonthlySummary{}, validator.ValidationErrors{{Field: "month", Message: "must be YYYY-MM"}}
	}

	days, err := clock.DaysInMonth(yearMonth)
	if err != nil {
		return report.MonthlySummary{}, err
	}

	records, err := r.attendanceRepo.ListByMonth(ctx, employeeNo, yearMonth)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to list attendance records: %w", err)
	}
	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.Date] = rec
	}

	summary := report.MonthlySummary{EmployeeNo: employeeNo, Month: yearMonth}

	for day := 1; day <= days; day++ {
		date := clock.DateInMonth(yearMonth, day)

		dayType, err := r.scheduleRepo.GetDayType(ctx, date)
		if err != nil {
			return report.MonthlySummary{}, fmt.Errorf("failed to get day type for %s: %w", date, err)
		}
		if dayType == schedule.DayClosed {
			continue
		}

		rec, stamped := byDate[date]
		if stamped && rec.HasStamp() {
			summary.WorkedDays++
		}

		scheduled, err := r.hasAnyPlan(ctx, employeeNo, date)
		if err != nil {
			return report.MonthlySummary{}, err
		}
		if !scheduled {
			summary.MissingScheduleDays++
			continue
		}

		if !stamped {
			continue
		}

		if late := rec.LateMinutes(); late > 0 {
			summary.LateCount++
			summary.LateMinutes += late
		}
		summary.EarlyMinutes += rec.EarlyMinutes()
		summary.OvertimeMinutes += rec.OvertimeMinutes()
	}

	summary.ApprovedMakeupCount, err = r.makeupRepo.CountApprovedInMonth(ctx, employeeNo, yearMonth)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to count approved makeups: %w", err)
	}

	summary.PersonalLeaveDays = r.personalLeaveDays(ctx, employeeNo, yearMonth)

	r.evaluateFullAttendance(&summary)

	return summary, nil
}

func (r *ReportServiceImpl) hasAnyPlan(ctx context.Context, employeeNo, date string) (bool, error) {
	for _, shift := range []attendance.Shift{attendance.ShiftMorning, attendance.ShiftNight} {
		plan, err := r.scheduleRepo.GetShiftPlan(ctx, employeeNo, date, shift)
		if err != nil {
			return false, fmt.Errorf("failed to get shift plan for %s: %w", date, err)
		}
		if plan != nil {
			return true, nil
		}
	}
	return false, nil
}

// personalLeaveDays degrades to zero when the leave system is down so a
// report never fails on an optional input.
func (r *ReportServiceImpl) personalLeaveDays(ctx context.Context, employeeNo, yearMonth string) int {
	if r.leave == nil {
		return 0
	}
	days, err := r.leave.PersonalLeaveDays(ctx, employeeNo, yearMonth)
	if err != nil {
		r.logger.Warn("leave provider unavailable, assuming zero leave days",
			slog.String("employee_no", employeeNo), slog.String("month", yearMonth), slog.Any("error", err))
		return 0
	}
	return days
}

// evaluateFullAttendance applies the breakage rules in fixed order and
// sets the lateness deduction. The deduction is the full lateness total
// and only applies when a lateness rule is what broke the month.
func (r *ReportServiceImpl) evaluateFullAttendance(s *report.MonthlySummary) {
	switch {
	case s.LateCount > maxLateCount:
		s.FullAttendanceBroken = true
		s.BrokenReason = ReasonLateCount
		s.LateDeductMinutes = s.LateMinutes
	case s.LateMinutes > maxLateMinutes:
		s.FullAttendanceBroken = true
		s.BrokenReason = ReasonLateMinutes
		s.LateDeductMinutes = s.LateMinutes
	case s.ApprovedMakeupCount > maxApprovedMakeups:
		s.FullAttendanceBroken = true
		s.BrokenReason = ReasonMakeupLimit
	case s.PersonalLeaveDays > 0:
		s.FullAttendanceBroken = true
		s.BrokenReason = ReasonPersonalLeave
	}
}
