package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwork/attendance-bot-go/internal/domain/attendance"
	"github.com/shiftwork/attendance-bot-go/internal/domain/schedule"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

// GetShiftPlan implements schedule.Repository.
func (s *scheduleRepository) GetShiftPlan(ctx context.Context, employeeNo, date string, shift attendance.Shift) (*schedule.ShiftPlan, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT start_time, end_time
		FROM shift_plans
		WHERE employee_no = $1 AND date = $2 AND shift = $3
	`

	var plan schedule.ShiftPlan
	err := q.QueryRow(ctx, query, employeeNo, date, string(shift)).Scan(&plan.Start, &plan.End)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // unscheduled
		}
		return nil, fmt.Errorf("failed to get shift plan: %w", err)
	}
	return &plan, nil
}

// GetDayType implements schedule.Repository.
func (s *scheduleRepository) GetDayType(ctx context.Context, date string) (schedule.DayType, error) {
	q := GetQuerier(ctx, s.db)

	query := `SELECT day_type FROM calendar_days WHERE date = $1`

	var dayType string
	err := q.QueryRow(ctx, query, date).Scan(&dayType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.DayOpen, nil
		}
		return "", fmt.Errorf("failed to get day type: %w", err)
	}
	return schedule.DayType(dayType), nil
}
