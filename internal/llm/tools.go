package llm

import (
	"fmt"

	"github.com/ollama/ollama/api"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

const (
	toolCreateRequest      = "create_request"
	toolGetPatientRequests = "get_patient_requests"
)

// Toolset is the immutable set of tools declared to the model at
// startup.
type Toolset struct {
	departments []string
}

// NewToolset declares the tool schema for the given department roster.
func NewToolset(departments []string) *Toolset {
	return &Toolset{departments: departments}
}

// Tools returns the declarations in Ollama's wire format.
func (t *Toolset) Tools() []api.Tool {
	return []api.Tool{
		{
			Type: "function",
			Function: api.ToolFunction{
				Name:        toolCreateRequest,
				Description: "Create a patient assistance request",
				Parameters: api.ToolFunctionParameters{
					Type:     "object",
					Required: []string{"priority", "description", "department"},
					Properties: map[string]api.ToolProperty{
						"priority": {
							Type:        api.PropertyType{"string"},
							Enum:        []any{"low", "medium", "high"},
							Description: "Priority level of the request",
						},
						"description": {
							Type:        api.PropertyType{"string"},
							Description: "Detailed description of the assistance needed",
						},
						"department": {
							Type:        api.PropertyType{"string"},
							Enum:        enumValues(t.departments),
							Description: "Department responsible for handling the request",
						},
					},
				},
			},
		},
		{
			Type: "function",
			Function: api.ToolFunction{
				Name:        toolGetPatientRequests,
				Description: "Retrieve patient requests",
				Parameters: api.ToolFunctionParameters{
					Type:     "object",
					Required: []string{"patientId"},
					Properties: map[string]api.ToolProperty{
						"status": {
							Type:        api.PropertyType{"string"},
							Enum:        []any{"pending", "in_progress", "completed", "cancelled"},
							Description: "Filter requests by status",
						},
						"patientId": {
							Type:        api.PropertyType{"string"},
							Description: "ID of the patient",
						},
					},
				},
			},
		},
	}
}

// ToolInvocation is a validated tool call. One variant exists per
// declared tool, so dispatch is an exhaustive type switch instead of a
// stringly-typed default case.
type ToolInvocation interface {
	isToolInvocation()
}

// CreateRequestCall asks for a new assistance request.
type CreateRequestCall struct {
	Priority    domain.Priority
	Description string
	Department  string
}

func (CreateRequestCall) isToolInvocation() {}

// GetPatientRequestsCall asks for a listing of the patient's requests.
type GetPatientRequestsCall struct {
	Status domain.Status // optional, empty means all
}

func (GetPatientRequestsCall) isToolInvocation() {}

// Decode validates a raw function call from the model against the
// declared schema and returns the typed invocation. A missing required
// parameter or out-of-range enum value wraps ErrParse; an undeclared
// tool name wraps ErrUnknownTool.
func (t *Toolset) Decode(name string, params map[string]any) (ToolInvocation, error) {
	switch name {
	case toolCreateRequest:
		return t.decodeCreateRequest(params)
	case toolGetPatientRequests:
		return decodeGetPatientRequests(params)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}

func (t *Toolset) decodeCreateRequest(params map[string]any) (ToolInvocation, error) {
	rawPriority, err := requireString(params, "priority")
	if err != nil {
		return nil, err
	}
	description, err := requireString(params, "description")
	if err != nil {
		return nil, err
	}
	department, err := requireString(params, "department")
	if err != nil {
		return nil, err
	}

	priority, err := domain.ParsePriority(rawPriority)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if !t.validDepartment(department) {
		return nil, fmt.Errorf("%w: invalid department %q", ErrParse, department)
	}

	return CreateRequestCall{
		Priority:    priority,
		Description: description,
		Department:  department,
	}, nil
}

func decodeGetPatientRequests(params map[string]any) (ToolInvocation, error) {
	// The schema requires patientId, but the trusted value comes from
	// the session, never from model output. Its presence is still
	// enforced so schema violations surface.
	if _, err := requireString(params, "patientId"); err != nil {
		return nil, err
	}

	call := GetPatientRequestsCall{}
	if raw, ok := params["status"].(string); ok && raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		call.Status = status
	}
	return call, nil
}

func (t *Toolset) validDepartment(name string) bool {
	for _, d := range t.departments {
		if d == name {
			return true
		}
	}
	return false
}

func requireString(params map[string]any, key string) (string, error) {
	value, ok := params[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%w: missing required parameter %q", ErrParse, key)
	}
	return value, nil
}

func enumValues(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
