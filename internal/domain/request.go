package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of an assistance request.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority accepts either casing ("high" from the tool schema,
// "HIGH" from the API) and returns the canonical value.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("invalid priority %q", s)
	}
}

// Lower returns the tool-schema representation.
func (p Priority) Lower() string { return strings.ToLower(string(p)) }

// Status is the lifecycle state of an assistance request.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// ParseStatus accepts either casing ("in_progress" or "IN_PROGRESS").
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

// Lower returns the tool-schema representation.
func (s Status) Lower() string { return strings.ToLower(string(s)) }

// Departments is the fixed set of nursing departments a request can be
// routed to. The assistant's tool schema enumerates the same values.
var Departments = []string{
	"Emergency",
	"Intensive Care",
	"Pediatrics",
	"Maternity",
	"Oncology",
	"Cardiology",
	"Neurology",
	"Orthopedics",
	"Psychiatry",
	"Rehabilitation",
	"Geriatrics",
	"Surgery",
	"Outpatient",
}

// ValidDepartment reports whether name is a known department.
func ValidDepartment(name string) bool {
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// Request is a patient assistance request.
type Request struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patientId"`
	NurseID     *string   `json:"nurseId,omitempty"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Description string    `json:"description"`
	Department  string    `json:"department"`
	Room        string    `json:"room,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
