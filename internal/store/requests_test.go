package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

func TestBuildRequestFilter(t *testing.T) {
	tests := []struct {
		name      string
		filter    RequestFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "empty filter",
			filter:    RequestFilter{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "patient only",
			filter:    RequestFilter{PatientID: "p1"},
			wantWhere: " WHERE patient_id = $1",
			wantArgs:  []any{"p1"},
		},
		{
			name:      "patient and status",
			filter:    RequestFilter{PatientID: "p1", Status: domain.StatusPending},
			wantWhere: " WHERE patient_id = $1 AND status = $2",
			wantArgs:  []any{"p1", domain.StatusPending},
		},
		{
			name:      "department and nurse",
			filter:    RequestFilter{Department: "Cardiology", NurseID: "n7"},
			wantWhere: " WHERE department = $1 AND nurse_id = $2",
			wantArgs:  []any{"Cardiology", "n7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildRequestFilter(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
