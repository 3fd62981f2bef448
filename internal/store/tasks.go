package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

// CreateTaskParams are the inputs for a new nurse task.
type CreateTaskParams struct {
	Description string
	AssignedTo  string
	AssignedBy  string
	PatientID   *string
}

const taskColumns = `id, description, assigned_to, assigned_by, patient_id, status, rejection_reason, created_at, updated_at`

// CreateTask assigns a new pending task to a nurse.
func (s *Store) CreateTask(ctx context.Context, p CreateTaskParams) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx,
		`INSERT INTO tasks (id, description, assigned_to, assigned_by, patient_id, status)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+taskColumns,
		uuid.New(), p.Description, p.AssignedTo, p.AssignedBy, p.PatientID, domain.TaskPending,
	)
	task, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// ListTasks returns tasks assigned to a nurse, newest first.
func (s *Store) ListTasks(ctx context.Context, nurseID string) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC`,
		nurseID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

// ResolveTask completes or rejects a task. A rejection records the
// reason.
func (s *Store) ResolveTask(ctx context.Context, taskID string, status domain.TaskStatus, rejectionReason string) (*domain.Task, error) {
	if status != domain.TaskCompleted && status != domain.TaskRejected {
		return nil, fmt.Errorf("task can only be resolved to completed or rejected, got %q", status)
	}
	row := s.db.QueryRowContext(ctx,
		`UPDATE tasks SET status = $1, rejection_reason = $2, updated_at = NOW()
         WHERE id = $3
         RETURNING `+taskColumns,
		status, rejectionReason, taskID,
	)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolve task: %w", err)
	}
	return task, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var patientID, reason sql.NullString
	err := row.Scan(
		&t.ID, &t.Description, &t.AssignedTo, &t.AssignedBy, &patientID,
		&t.Status, &reason, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if patientID.Valid {
		t.PatientID = &patientID.String
	}
	t.RejectionReason = reason.String
	return &t, nil
}
