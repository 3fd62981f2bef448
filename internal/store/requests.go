package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

// CreateRequestParams are the inputs for a new assistance request.
type CreateRequestParams struct {
	PatientID   string
	NurseID     *string
	Priority    domain.Priority
	Description string
	Department  string
	Room        string
}

// RequestFilter selects requests in FindRequests. Zero values are
// ignored.
type RequestFilter struct {
	PatientID  string
	Department string
	Status     domain.Status
	NurseID    string
}

const requestColumns = `id, patient_id, nurse_id, priority, status, description, department, room, created_at, updated_at`

// CreateRequest persists a new request with status PENDING.
func (s *Store) CreateRequest(ctx context.Context, p CreateRequestParams) (*domain.Request, error) {
	newID := uuid.New()
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO requests (id, patient_id, nurse_id, priority, status, description, department, room)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING `+requestColumns,
		newID, p.PatientID, p.NurseID, p.Priority, domain.StatusPending, p.Description, p.Department, p.Room,
	)
	req, err := scanRequest(row)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

// FindRequests returns requests matching the filter, newest first.
func (s *Store) FindRequests(ctx context.Context, f RequestFilter) ([]domain.Request, error) {
	where, args := buildRequestFilter(f)
	query := `SELECT ` + requestColumns + ` FROM requests` + where + ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("find requests: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// UpdateRequestStatus transitions a request and returns the updated
// record. Assigning nurse is optional and recorded on first transition.
func (s *Store) UpdateRequestStatus(ctx context.Context, id string, status domain.Status, nurseID *string) (*domain.Request, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE requests
         SET status = $1, nurse_id = COALESCE($2, nurse_id), updated_at = NOW()
         WHERE id = $3
         RETURNING `+requestColumns,
		status, nurseID, id,
	)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}
	return req, nil
}

// buildRequestFilter renders the WHERE clause for a filter. Split out so
// the dynamic SQL is testable without a database.
func buildRequestFilter(f RequestFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if f.PatientID != "" {
		add("patient_id", f.PatientID)
	}
	if f.Department != "" {
		add("department", f.Department)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.NurseID != "" {
		add("nurse_id", f.NurseID)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var req domain.Request
	var nurseID sql.NullString
	var room sql.NullString
	err := row.Scan(
		&req.ID, &req.PatientID, &nurseID, &req.Priority, &req.Status,
		&req.Description, &req.Department, &room, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if nurseID.Valid {
		req.NurseID = &nurseID.String
	}
	req.Room = room.String
	return &req, nil
}
