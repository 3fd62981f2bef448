package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

// ErrInvalidCredentials is returned by Authenticate on a bad email or
// password. Deliberately indistinguishable between the two.
var ErrInvalidCredentials = errors.New("invalid credentials")

// CreateUserParams are the inputs for account registration.
type CreateUserParams struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Role       domain.Role
	Department string
	Room       string
	Phone      string
}

const userColumns = `id, email, password_hash, first_name, last_name, role, department, room, phone, active, approval, created_at, updated_at`

// CreateUser registers an account. Nurses start with approval PENDING,
// everyone else is approved immediately.
func (s *Store) CreateUser(ctx context.Context, p CreateUserParams) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	approval := domain.ApprovalApproved
	if p.Role == domain.RoleNurse {
		approval = domain.ApprovalPending
	}

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, role, department, room, phone, active, approval)
         VALUES ($1, LOWER($2), $3, $4, $5, $6, $7, $8, $9, TRUE, $10)
         RETURNING `+userColumns,
		uuid.New(), p.Email, string(hash), p.FirstName, p.LastName, p.Role, p.Department, p.Room, p.Phone, approval,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies an email/password pair.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = LOWER($1) AND active`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListNurses returns nurse accounts, optionally filtered by approval
// status.
func (s *Store) ListNurses(ctx context.Context, approval domain.ApprovalStatus) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1`
	args := []any{domain.RoleNurse}
	if approval != "" {
		query += ` AND approval = $2`
		args = append(args, approval)
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list nurses: %w", err)
	}
	defer rows.Close()

	var nurses []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list nurses: %w", err)
		}
		nurses = append(nurses, *user)
	}
	return nurses, rows.Err()
}

// SetNurseApproval records an admin's approval decision.
func (s *Store) SetNurseApproval(ctx context.Context, nurseID string, approval domain.ApprovalStatus) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE users SET approval = $1, updated_at = NOW()
         WHERE id = $2 AND role = $3
         RETURNING `+userColumns,
		approval, nurseID, domain.RoleNurse,
	)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set nurse approval: %w", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var department, room, phone sql.NullString
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role,
		&department, &room, &phone, &u.Active, &u.Approval, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Department = department.String
	u.Room = room.String
	u.Phone = phone.String
	return &u, nil
}
