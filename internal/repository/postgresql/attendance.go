package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee_no, date,
	morning_check_in, morning_check_out, morning_planned_start, morning_planned_end,
	morning_has_schedule, morning_late_minutes, morning_early_minutes, morning_overtime_minutes,
	night_check_in, night_check_out, night_planned_start, night_planned_end,
	night_has_schedule, night_late_minutes, night_early_minutes, night_overtime_minutes,
	created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeNo, &rec.Date,
		&rec.Morning.CheckIn, &rec.Morning.CheckOut, &rec.Morning.PlannedStart, &rec.Morning.PlannedEnd,
		&rec.Morning.HasSchedule, &rec.Morning.LateMinutes, &rec.Morning.EarlyMinutes, &rec.Morning.OvertimeMinutes,
		&rec.Night.CheckIn, &rec.Night.CheckOut, &rec.Night.PlannedStart, &rec.Night.PlannedEnd,
		&rec.Night.HasSchedule, &rec.Night.LateMinutes, &rec.Night.EarlyMinutes, &rec.Night.OvertimeMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Ensure implements attendance.Repository.
func (a *attendanceRepository) Ensure(ctx context.Context, employeeNo, date string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (id, employee_no, date)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_no, date) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, uuid.NewString(), employeeNo, date); err != nil {
		return fmt.Errorf("failed to ensure attendance record: %w", err)
	}
	return nil
}

// Get implements attendance.Repository.
func (a *attendanceRepository) Get(ctx context.Context, employeeNo, date string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_no = $1 AND date = $2
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeNo, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return rec, nil
}

// slotColumn maps shift+action to the stamp column. Both values are
// validated enums before they reach the repository.
func slotColumn(shift attendance.Shift, action attendance.Action) (string, error) {
	switch {
	case shift == attendance.ShiftMorning && action == attendance.ActionCheckIn:
		return "morning_check_in", nil
	case shift == attendance.ShiftMorning && action == attendance.ActionCheckOut:
		return "morning_check_out", nil
	case shift == attendance.ShiftNight && action == attendance.ActionCheckIn:
		return "night_check_in", nil
	case shift == attendance.ShiftNight && action == attendance.ActionCheckOut:
		return "night_check_out", nil
	case shift != attendance.ShiftMorning && shift != attendance.ShiftNight:
		return "", fmt.Errorf("%w: %s", attendance.ErrInvalidShift, shift)
	}
	return "", fmt.Errorf("%w: %s", attendance.ErrInvalidAction, action)
}

// StampSlot implements attendance.Repository. The IS NULL guard makes
// the check-and-set a single atomic statement: the losing writer of a
// race sees zero affected rows.
func (a *attendanceRepository) StampSlot(ctx context.Context, employeeNo, date string, shift attendance.Shift, action attendance.Action, at time.Time, source attendance.Source) error {
	q := GetQuerier(ctx, a.db)

	column, err := slotColumn(shift, action)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE attendance_records
		SET %s = $1, last_source = $2, updated_at = NOW()
		WHERE employee_no = $3 AND date = $4 AND %s IS NULL
	`, column, column)

	tag, err := q.Exec(ctx, query, at, string(source), employeeNo, date)
	if err != nil {
		return fmt.Errorf("failed to stamp %s: %w", column, err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAlreadyStamped
	}
	return nil
}

// UpdateSlotStats implements attendance.Repository.
func (a *attendanceRepository) UpdateSlotStats(ctx context.Context, employeeNo, date string, shift attendance.Shift, slot attendance.Slot) error {
	q := GetQuerier(ctx, a.db)

	prefix := "morning"
	if shift == attendance.ShiftNight {
		prefix = "night"
	}

	query := fmt.Sprintf(`
		UPDATE attendance_records
		SET %[1]s_planned_start = $1, %[1]s_planned_end = $2, %[1]s_has_schedule = $3,
		    %[1]s_late_minutes = $4, %[1]s_early_minutes = $5, %[1]s_overtime_minutes = $6,
		    updated_at = NOW()
		WHERE employee_no = $7 AND date = $8
		RETURNING id
	`, prefix)

	var id string
	err := q.QueryRow(ctx, query,
		slot.PlannedStart, slot.PlannedEnd, slot.HasSchedule,
		slot.LateMinutes, slot.EarlyMinutes, slot.OvertimeMinutes,
		employeeNo, date,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update %s slot stats: %w", prefix, err)
	}
	return nil
}

// ListByMonth implements attendance.Repository.
func (a *attendanceRepository) ListByMonth(ctx context.Context, employeeNo, yearMonth string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_no = $1 AND date LIKE $2 || '-%'
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeNo, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
