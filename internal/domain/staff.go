package domain

import "time"

// Role identifies the kind of user holding a connection or record.
type Role string

const (
	RolePatient Role = "patient"
	RoleNurse   Role = "nurse"
	RoleAdmin   Role = "admin"
)

// Privileged reports whether the role may join department rooms and
// receive request broadcasts.
func (r Role) Privileged() bool {
	return r == RoleNurse || r == RoleAdmin
}

// ApprovalStatus tracks nurse account approval by an admin.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// User is a patient, nurse or admin account.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Role         Role           `json:"role"`
	Department   string         `json:"department,omitempty"` // nurses only
	Room         string         `json:"room,omitempty"`       // patients only
	Phone        string         `json:"phone,omitempty"`
	Active       bool           `json:"active"`
	Approval     ApprovalStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// TaskStatus is the lifecycle state of a nurse task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskRejected  TaskStatus = "rejected"
)

// Task is a unit of work assigned to a nurse, optionally tied to a patient.
type Task struct {
	ID              string     `json:"id"`
	Description     string     `json:"description"`
	AssignedTo      string     `json:"assignedTo"`
	AssignedBy      string     `json:"assignedBy"`
	PatientID       *string    `json:"patientId,omitempty"`
	Status          TaskStatus `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// Shift is a scheduled working period for a nurse.
type Shift struct {
	ID         string    `json:"id"`
	NurseID    string    `json:"nurseId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Department string    `json:"department"`
	Notes      string    `json:"notes,omitempty"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Message is a direct message between two users.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	ReceiverID  string    `json:"receiverId"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"` // "text" or "image"
	ImageURL    string    `json:"imageUrl,omitempty"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
