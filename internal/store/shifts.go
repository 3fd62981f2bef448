package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

// CreateShiftParams are the inputs for scheduling a shift.
type CreateShiftParams struct {
	NurseID    string
	Date       string
	StartTime  string
	EndTime    string
	Department string
	Notes      string
	CreatedBy  string
}

const shiftColumns = `id, nurse_id, date, start_time, end_time, department, notes, created_by, created_at, updated_at`

// CreateShift schedules a shift for a nurse.
func (s *Store) CreateShift(ctx context.Context, p CreateShiftParams) (*domain.Shift, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO shifts (id, nurse_id, date, start_time, end_time, department, notes, created_by)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING `+shiftColumns,
		uuid.New(), p.NurseID, p.Date, p.StartTime, p.EndTime, p.Department, p.Notes, p.CreatedBy,
	)
	shift, err := scanShift(row)
	if err != nil {
		return nil, fmt.Errorf("create shift: %w", err)
	}
	return shift, nil
}

// ListShifts returns a nurse's shifts, optionally narrowed to one date.
func (s *Store) ListShifts(ctx context.Context, nurseID, date string) ([]domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE nurse_id = $1`
	args := []any{nurseID}
	if date != "" {
		query += ` AND date = $2`
		args = append(args, date)
	}
	query += ` ORDER BY date, start_time`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("list shifts: %w", err)
		}
		shifts = append(shifts, *shift)
	}
	return shifts, rows.Err()
}

// DeleteShift removes a scheduled shift.
func (s *Store) DeleteShift(ctx context.Context, shiftID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shifts WHERE id = $1`, shiftID)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShift(row rowScanner) (*domain.Shift, error) {
	var sh domain.Shift
	var notes sql.NullString
	err := row.Scan(
		&sh.ID, &sh.NurseID, &sh.Date, &sh.StartTime, &sh.EndTime,
		&sh.Department, &notes, &sh.CreatedBy, &sh.CreatedAt, &sh.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sh.Notes = notes.String
	return &sh, nil
}
