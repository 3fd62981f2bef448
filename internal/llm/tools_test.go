package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

func TestToolsetDeclaration(t *testing.T) {
	tools := NewToolset(domain.Departments).Tools()
	require.Len(t, tools, 2)

	create := tools[0].Function
	assert.Equal(t, "create_request", create.Name)
	assert.ElementsMatch(t, []string{"priority", "description", "department"}, create.Parameters.Required)
	assert.Len(t, create.Parameters.Properties["department"].Enum, len(domain.Departments))

	query := tools[1].Function
	assert.Equal(t, "get_patient_requests", query.Name)
	assert.Contains(t, query.Parameters.Properties, "status")
}

func TestDecodeCreateRequest(t *testing.T) {
	ts := NewToolset(domain.Departments)

	tests := []struct {
		name    string
		params  map[string]any
		want    CreateRequestCall
		wantErr error
	}{
		{
			name: "valid call",
			params: map[string]any{
				"priority":    "high",
				"description": "chest pain",
				"department":  "Cardiology",
			},
			want: CreateRequestCall{
				Priority:    domain.PriorityHigh,
				Description: "chest pain",
				Department:  "Cardiology",
			},
		},
		{
			name: "missing priority",
			params: map[string]any{
				"description": "water please",
				"department":  "Pediatrics",
			},
			wantErr: ErrParse,
		},
		{
			name: "priority outside enum",
			params: map[string]any{
				"priority":    "urgent",
				"description": "water please",
				"department":  "Pediatrics",
			},
			wantErr: ErrParse,
		},
		{
			name: "unknown department",
			params: map[string]any{
				"priority":    "low",
				"description": "water please",
				"department":  "Radiology",
			},
			wantErr: ErrParse,
		},
		{
			name: "non-string parameter",
			params: map[string]any{
				"priority":    3,
				"description": "water please",
				"department":  "Pediatrics",
			},
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ts.Decode("create_request", tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeGetPatientRequests(t *testing.T) {
	ts := NewToolset(domain.Departments)

	got, err := ts.Decode("get_patient_requests", map[string]any{
		"patientId": "patient-1",
		"status":    "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, GetPatientRequestsCall{Status: domain.StatusPending}, got)

	got, err = ts.Decode("get_patient_requests", map[string]any{
		"patientId": "patient-1",
	})
	require.NoError(t, err)
	assert.Equal(t, GetPatientRequestsCall{}, got)

	_, err = ts.Decode("get_patient_requests", map[string]any{
		"patientId": "patient-1",
		"status":    "done",
	})
	assert.ErrorIs(t, err, ErrParse)

	_, err = ts.Decode("get_patient_requests", map[string]any{"status": "pending"})
	assert.ErrorIs(t, err, ErrParse)
}

func TestDecodeUnknownTool(t *testing.T) {
	ts := NewToolset(domain.Departments)

	_, err := ts.Decode("cancel_request", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownTool)
}
