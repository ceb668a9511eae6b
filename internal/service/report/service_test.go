package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/domain/report"
	"github.com/shiftwork/attendance-bot-go/internal/domain/schedule"
)

type fakeLedger struct {
	records map[string]attendance.Record // key date
}

func (f *fakeLedger) Ensure(context.Context, string, string) error { return nil }

func (f *fakeLedger) Get(_ context.Context, _, date string) (attendance.Record, error) {
	rec, ok := f.records[date]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeLedger) StampSlot(context.Context, string, string, attendance.Shift, attendance.Action, time.Time, attendance.Source) error {
	return nil
}

func (f *fakeLedger) UpdateSlotStats(context.Context, string, string, attendance.Shift, attendance.Slot) error {
	return nil
}

func (f *fakeLedger) ListByMonth(_ context.Context, _, yearMonth string) ([]attendance.Record, error) {
	var out []attendance.Record
	for date, rec := range f.records {
		if len(date) >= 7 && date[:7] == yearMonth {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeSchedules struct {
	planned map[string]bool // dates with a morning plan
	closed  map[string]bool
}

func (f *fakeSchedules) GetShiftPlan(_ context.Context, _, date string, shift attendance.Shift) (*schedule.ShiftPlan, error) {
	if shift == attendance.ShiftMorning && f.planned[date] {
		return &schedule.ShiftPlan{Start: "09:00", End: "18:00"}, nil
	}
	return nil, nil
}

func (f *fakeSchedules) GetDayType(_ context.Context, date string) (schedule.DayType, error) {
	if f.closed[date] {
		return schedule.DayClosed, nil
	}
	return schedule.DayOpen, nil
}

type fakeMakeupCounter struct {
	approved int
}

func (f *fakeMakeupCounter) Create(_ context.Context, req makeup.Request) (makeup.Request, error) {
	return req, nil
}

func (f *fakeMakeupCounter) GetByID(context.Context, string) (makeup.Request, error) {
	return makeup.Request{}, makeup.ErrRequestNotFound
}

func (f *fakeMakeupCounter) TransitionStatus(context.Context, string, makeup.Status, makeup.Status, string, time.Time) error {
	return nil
}

func (f *fakeMakeupCounter) ListPending(context.Context) ([]makeup.Request, error) { return nil, nil }

func (f *fakeMakeupCounter) CountApprovedInMonth(context.Context, string, string) (int, error) {
	return f.approved, nil
}

type fixedLeave struct {
	days int
	err  error
}

func (f fixedLeave) PersonalLeaveDays(context.Context, string, string) (int, error) {
	return f.days, f.err
}

type reportFixture struct {
	ledger    *fakeLedger
	schedules *fakeSchedules
	makeups   *fakeMakeupCounter
	leave     report.LeaveProvider
}

func newReportFixture() *reportFixture {
	return &reportFixture{
		ledger:    &fakeLedger{records: make(map[string]attendance.Record)},
		schedules: &fakeSchedules{planned: make(map[string]bool), closed: make(map[string]bool)},
		makeups:   &fakeMakeupCounter{},
		leave:     fixedLeave{},
	}
}

func (fx *reportFixture) service() report.Service {
	return NewReportService(fx.ledger, fx.schedules, fx.makeups, fx.leave, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// addDay records a scheduled, stamped day with the given morning stats.
func (fx *reportFixture) addDay(date string, lateMinutes, earlyMinutes, overtimeMinutes int) {
	fx.schedules.planned[date] = true
	in := time.Now()
	fx.ledger.records[date] = attendance.Record{
		EmployeeNo: "EMP001",
		Date:       date,
		Morning: attendance.Slot{
			CheckIn:         &in,
			HasSchedule:     true,
			LateMinutes:     lateMinutes,
			EarlyMinutes:    earlyMinutes,
			OvertimeMinutes: overtimeMinutes,
		},
	}
}

func summarize(t *testing.T, fx *reportFixture) report.MonthlySummary {
	t.Helper()
	summary, err := fx.service().Summarize(context.Background(), "EMP001", "2025-03")
	require.NoError(t, err)
	return summary
}

func TestSummarizeEmptyMonth(t *testing.T) {
	fx := newReportFixture()

	summary := summarize(t, fx)

	assert.Zero(t, summary.WorkedDays)
	assert.Zero(t, summary.LateCount)
	assert.Zero(t, summary.LateMinutes)
	assert.False(t, summary.FullAttendanceBroken)
	assert.Zero(t, summary.LateDeductMinutes)
	assert.Equal(t, 31, summary.MissingScheduleDays)
}

func TestSummarizeAccumulatesStats(t *testing.T) {
	fx := newReportFixture()
	fx.addDay("2025-03-03", 5, 0, 0)
	fx.addDay("2025-03-04", 0, 65, 0)
	fx.addDay("2025-03-05", 0, 0, 70)

	summary := summarize(t, fx)

	assert.Equal(t, 3, summary.WorkedDays)
	assert.Equal(t, 1, summary.LateCount)
	assert.Equal(t, 5, summary.LateMinutes)
	assert.Equal(t, 65, summary.EarlyMinutes)
	assert.Equal(t, 70, summary.OvertimeMinutes)
	assert.False(t, summary.FullAttendanceBroken)
}

func TestSummarizeLateCountBreaksFullAttendance(t *testing.T) {
	fx := newReportFixture()
	for day := 3; day <= 7; day++ { // 5 late days, 1 minute each
		fx.addDay(time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), 1, 0, 0)
	}

	summary := summarize(t, fx)

	assert.Equal(t, 5, summary.LateCount)
	assert.True(t, summary.FullAttendanceBroken)
	assert.Equal(t, ReasonLateCount, summary.BrokenReason)
	assert.Equal(t, 5, summary.LateDeductMinutes)
}

func TestSummarizeLateMinutesBreaksFullAttendance(t *testing.T) {
	fx := newReportFixture()
	fx.addDay("2025-03-03", 4, 0, 0)
	fx.addDay("2025-03-04", 4, 0, 0)
	fx.addDay("2025-03-05", 3, 0, 0)

	summary := summarize(t, fx)

	assert.Equal(t, 3, summary.LateCount)
	assert.Equal(t, 11, summary.LateMinutes)
	assert.True(t, summary.FullAttendanceBroken)
	assert.Equal(t, ReasonLateMinutes, summary.BrokenReason)
	assert.Equal(t, 11, summary.LateDeductMinutes)
}

func TestSummarizeAtThresholdsKeepsFullAttendance(t *testing.T) {
	fx := newReportFixture()
	fx.addDay("2025-03-03", 4, 0, 0)
	fx.addDay("2025-03-04", 3, 0, 0)
	fx.addDay("2025-03-05", 3, 0, 0)
	fx.makeups.approved = 3

	summary := summarize(t, fx)

	assert.Equal(t, 3, summary.LateCount)
	assert.Equal(t, 10, summary.LateMinutes)
	assert.False(t, summary.FullAttendanceBroken)
	assert.Zero(t, summary.LateDeductMinutes)
}

func TestSummarizeMakeupLimitBreaksWithoutDeduction(t *testing.T) {
	fx := newReportFixture()
	fx.addDay("2025-03-03", 2, 0, 0)
	fx.makeups.approved = 4

	summary := summarize(t, fx)

	assert.True(t, summary.FullAttendanceBroken)
	assert.Equal(t, ReasonMakeupLimit, summary.BrokenReason)
	assert.Zero(t, summary.LateDeductMinutes, "makeup breakage carries no lateness deduction")
}

func TestSummarizePersonalLeaveBreaks(t *testing.T) {
	fx := newReportFixture()
	fx.leave = fixedLeave{days: 2}

	summary := summarize(t, fx)

	assert.Equal(t, 2, summary.PersonalLeaveDays)
	assert.True(t, summary.FullAttendanceBroken)
	assert.Equal(t, ReasonPersonalLeave, summary.BrokenReason)
}

func TestSummarizeLeaveProviderFailureAssumesZero(t *testing.T) {
	fx := newReportFixture()
	fx.leave = fixedLeave{err: errors.New("leave system down")}

	summary := summarize(t, fx)

	assert.Zero(t, summary.PersonalLeaveDays)
	assert.False(t, summary.FullAttendanceBroken)
}

func TestSummarizeSkipsClosedDays(t *testing.T) {
	fx := newReportFixture()
	fx.addDay("2025-03-03", 30, 0, 0)
	fx.schedules.closed["2025-03-03"] = true

	summary := summarize(t, fx)

	assert.Zero(t, summary.WorkedDays)
	assert.Zero(t, summary.LateCount)
	assert.Zero(t, summary.LateMinutes)
	assert.Equal(t, 30, summary.MissingScheduleDays, "closed day drops out of the denominator")
}

func TestSummarizeUnscheduledStampCountsAsWorkedOnly(t *testing.T) {
	fx := newReportFixture()
	in := time.Now()
	fx.ledger.records["2025-03-03"] = attendance.Record{
		EmployeeNo: "EMP001",
		Date:       "2025-03-03",
		Morning:    attendance.Slot{CheckIn: &in},
	}

	summary := summarize(t, fx)

	assert.Equal(t, 1, summary.WorkedDays)
	assert.Zero(t, summary.LateCount)
	assert.Equal(t, 31, summary.MissingScheduleDays)
}

func TestSummarizeLateCountIsPerDay(t *testing.T) {
	fx := newReportFixture()
	in := time.Now()
	fx.schedules.planned["2025-03-03"] = true
	fx.ledger.records["2025-03-03"] = attendance.Record{
		EmployeeNo: "EMP001",
		Date:       "2025-03-03",
		Morning:    attendance.Slot{CheckIn: &in, HasSchedule: true, LateMinutes: 3},
		Night:      attendance.Slot{CheckIn: &in, HasSchedule: true, LateMinutes: 4},
	}

	summary := summarize(t, fx)

	assert.Equal(t, 1, summary.LateCount, "two late shifts on one day count once")
	assert.Equal(t, 7, summary.LateMinutes)
}

func TestSummarizeValidatesMonth(t *testing.T) {
	fx := newReportFixture()

	_, err := fx.service().Summarize(context.Background(), "EMP001", "March 2025")
	require.Error(t, err)
}

func TestExportSummaryProducesWorkbook(t *testing.T) {
	fx := newReportFixture()
	fx.addDay("2025-03-03", 5, 0, 0)

	data, err := fx.service().ExportSummary(context.Background(), "EMP001", "2025-03")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx is a zip container.
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
