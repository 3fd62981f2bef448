package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/store"
)

// fakeRequestStore records calls and serves canned responses.
type fakeRequestStore struct {
	created    []store.CreateRequestParams
	createErr  error
	found      []domain.Request
	findErr    error
	lastFilter store.RequestFilter
}

func (f *fakeRequestStore) CreateRequest(_ context.Context, p store.CreateRequestParams) (*domain.Request, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, p)
	return &domain.Request{
		ID:          "req-1",
		PatientID:   p.PatientID,
		Priority:    p.Priority,
		Status:      domain.StatusPending,
		Description: p.Description,
		Department:  p.Department,
		Room:        p.Room,
		CreatedAt:   time.Now(),
	}, nil
}

func (f *fakeRequestStore) FindRequests(_ context.Context, filter store.RequestFilter) ([]domain.Request, error) {
	f.lastFilter = filter
	return f.found, f.findErr
}

func newTestInterpreter(fs *fakeRequestStore) *Interpreter {
	return NewInterpreter(NewToolset(domain.Departments), fs, nil)
}

func TestInterpretPlainResponse(t *testing.T) {
	fs := &fakeRequestStore{}
	interp := newTestInterpreter(fs)

	raw := `{"thoughts": "patient is chatting", "response": "Hello! How can I help you today?"}`
	result, err := interp.Interpret(context.Background(), raw, NewSession("patient-1", "302B"))
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you today?", result.Text)
	assert.Empty(t, result.RequestID)
	assert.Empty(t, fs.created)
}

func TestInterpretCreateRequest(t *testing.T) {
	fs := &fakeRequestStore{}
	interp := newTestInterpreter(fs)
	sess := NewSession("patient-1", "302B")

	raw := `{
		"thoughts": "the patient confirmed",
		"response": "I'll get a nurse for you right away.",
		"function_call": {
			"name": "create_request",
			"parameters": {"priority": "high", "description": "chest pain", "department": "Cardiology"}
		}
	}`
	result, err := interp.Interpret(context.Background(), raw, sess)
	require.NoError(t, err)
	require.Len(t, fs.created, 1)

	created := fs.created[0]
	assert.Equal(t, "patient-1", created.PatientID)
	assert.Equal(t, domain.PriorityHigh, created.Priority)
	assert.Equal(t, "chest pain", created.Description)
	assert.Equal(t, "Cardiology", created.Department)
	assert.Equal(t, "302B", created.Room)

	assert.Equal(t, "req-1", result.RequestID)
	assert.Contains(t, result.Text, "I'll get a nurse for you right away.")
	assert.Contains(t, result.Text, "Priority: high")
	assert.Contains(t, result.Text, "Department: Cardiology")
	assert.Contains(t, result.Text, "Description: chest pain")
	assert.Contains(t, result.Text, "Room: 302B")
}

func TestInterpretCreateRequestDefaultsRoom(t *testing.T) {
	fs := &fakeRequestStore{}
	interp := newTestInterpreter(fs)
	sess := NewSession("patient-1", "")

	raw := `{
		"response": "On it.",
		"function_call": {
			"name": "create_request",
			"parameters": {"priority": "low", "description": "water", "department": "Pediatrics"}
		}
	}`
	_, err := interp.Interpret(context.Background(), raw, sess)
	require.NoError(t, err)
	require.Len(t, fs.created, 1)
	assert.Equal(t, "Unknown", fs.created[0].Room)
}

func TestInterpretCreateRequestStoreFailure(t *testing.T) {
	fs := &fakeRequestStore{createErr: errors.New("connection reset")}
	interp := newTestInterpreter(fs)

	raw := `{
		"response": "Let me create that.",
		"function_call": {
			"name": "create_request",
			"parameters": {"priority": "medium", "description": "blanket", "department": "Geriatrics"}
		}
	}`
	result, err := interp.Interpret(context.Background(), raw, NewSession("patient-1", "302B"))

	// A store failure must not kill the turn; the patient gets a manual
	// fallback instead.
	require.NoError(t, err)
	assert.Empty(t, result.RequestID)
	assert.Contains(t, result.Text, "Let me create that.")
	assert.Contains(t, result.Text, "bedside button")
}

func TestInterpretGetPatientRequests(t *testing.T) {
	fs := &fakeRequestStore{found: []domain.Request{
		{
			Priority:    domain.PriorityHigh,
			Status:      domain.StatusPending,
			Description: "chest pain",
			Department:  "Cardiology",
			Room:        "302B",
		},
		{
			Priority:    domain.PriorityLow,
			Status:      domain.StatusCompleted,
			Description: "water",
			Department:  "Pediatrics",
			Room:        "302B",
		},
	}}
	interp := newTestInterpreter(fs)

	raw := `{
		"response": "Here is what I found.",
		"function_call": {
			"name": "get_patient_requests",
			"parameters": {"patientId": "patient-1", "status": "pending"}
		}
	}`
	result, err := interp.Interpret(context.Background(), raw, NewSession("patient-1", "302B"))
	require.NoError(t, err)

	// The filter uses the session's identity, not the model's parameter.
	assert.Equal(t, "patient-1", fs.lastFilter.PatientID)
	assert.Equal(t, domain.StatusPending, fs.lastFilter.Status)

	assert.Contains(t, result.Text, "Here is what I found.")
	assert.Contains(t, result.Text, "chest pain")
	assert.Contains(t, result.Text, "Status: completed")
}

func TestInterpretGetPatientRequestsEmpty(t *testing.T) {
	fs := &fakeRequestStore{}
	interp := newTestInterpreter(fs)

	raw := `{
		"response": "Checking now.",
		"function_call": {
			"name": "get_patient_requests",
			"parameters": {"patientId": "patient-1"}
		}
	}`
	result, err := interp.Interpret(context.Background(), raw, NewSession("patient-1", ""))
	require.NoError(t, err)
	assert.Contains(t, result.Text, "no requests on file")
}

func TestInterpretMalformedEnvelope(t *testing.T) {
	fs := &fakeRequestStore{}
	interp := newTestInterpreter(fs)

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I will help you with that!"},
		{"truncated", `{"response": "hel`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interp.Interpret(context.Background(), tt.raw, NewSession("patient-1", ""))
			require.ErrorIs(t, err, ErrParse)
			assert.Empty(t, fs.created)
		})
	}
}

func TestInterpretHallucinatedTool(t *testing.T) {
	fs := &fakeRequestStore{}
	interp := newTestInterpreter(fs)

	raw := `{
		"response": "Cancelling that for you.",
		"function_call": {"name": "cancel_request", "parameters": {}}
	}`
	_, err := interp.Interpret(context.Background(), raw, NewSession("patient-1", ""))
	require.ErrorIs(t, err, ErrUnknownTool)
	assert.Empty(t, fs.created)
}
