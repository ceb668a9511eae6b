package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftwork/attendance-bot-go/internal/domain/makeup"
	"github.com/shiftwork/attendance-bot-go/internal/pkg/database"
)

type makeupRepository struct {
	db *database.DB
}

func NewMakeupRepository(db *database.DB) makeup.Repository {
	return &makeupRepository{db: db}
}

const makeupColumns = `
	id, employee_no, requested_by, date, shift, action, reason,
	status, created_at, reviewed_by, reviewed_at`

func scanMakeupRequest(row pgx.Row) (makeup.Request, error) {
	var req makeup.Request
	err := row.Scan(
		&req.ID, &req.EmployeeNo, &req.RequestedBy, &req.Date, &req.Shift, &req.Action, &req.Reason,
		&req.Status, &req.CreatedAt, &req.ReviewedBy, &req.ReviewedAt,
	)
	return req, err
}

// Create implements makeup.Repository.
func (m *makeupRepository) Create(ctx context.Context, req makeup.Request) (makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	query := `
		INSERT INTO makeup_requests (id, employee_no, requested_by, date, shift, action, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeNo, req.RequestedBy, req.Date,
		string(req.Shift), string(req.Action), req.Reason, string(req.Status),
	).Scan(&req.CreatedAt)
	if err != nil {
		return makeup.Request{}, fmt.Errorf("failed to create makeup request: %w", err)
	}
	return req, nil
}

// GetByID implements makeup.Repository.
func (m *makeupRepository) GetByID(ctx context.Context, id string) (makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT ` + makeupColumns + ` FROM makeup_requests WHERE id = $1`

	req, err := scanMakeupRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return makeup.Request{}, makeup.ErrRequestNotFound
		}
		return makeup.Request{}, fmt.Errorf("failed to get makeup request: %w", err)
	}
	return req, nil
}

// TransitionStatus implements makeup.Repository. The status guard in
// the WHERE clause is the check-and-set; a concurrent decision that
// already landed leaves zero rows for the loser.
func (m *makeupRepository) TransitionStatus(ctx context.Context, id string, from, to makeup.Status, reviewedBy string, at time.Time) error {
	q := GetQuerier(ctx, m.db)

	query := `
		UPDATE makeup_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE id = $4 AND status = $5
	`

	tag, err := q.Exec(ctx, query, string(to), reviewedBy, at, id, string(from))
	if err != nil {
		return fmt.Errorf("failed to transition makeup request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return makeup.ErrAlreadyDecided
	}
	return nil
}

// ListPending implements makeup.Repository.
func (m *makeupRepository) ListPending(ctx context.Context) ([]makeup.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := `SELECT ` + makeupColumns + `
		FROM makeup_requests
		WHERE status = 'pending'
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending makeup requests: %w", err)
	}
	defer rows.Close()

	var requests []makeup.Request
	for rows.Next() {
		req, err := scanMakeupRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan makeup request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// CountApprovedInMonth implements makeup.Repository.
func (m *makeupRepository) CountApprovedInMonth(ctx context.Context, employeeNo, yearMonth string) (int, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		SELECT COUNT(*)
		FROM makeup_requests
		WHERE employee_no = $1 AND status = 'approved' AND date LIKE $2 || '-%'
	`

	var count int
	if err := q.QueryRow(ctx, query, employeeNo, yearMonth).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count approved makeup requests: %w", err)
	}
	return count, nil
}
