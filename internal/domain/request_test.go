package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"high", PriorityHigh, false},
		{"HIGH", PriorityHigh, false},
		{" medium ", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got)

	_, err = ParseStatus("done")
	assert.Error(t, err)
}

func TestValidDepartment(t *testing.T) {
	assert.True(t, ValidDepartment("Cardiology"))
	assert.True(t, ValidDepartment("Intensive Care"))
	assert.False(t, ValidDepartment("cardiology"))
	assert.False(t, ValidDepartment("Radiology"))
}

func TestRolePrivileged(t *testing.T) {
	assert.True(t, RoleNurse.Privileged())
	assert.True(t, RoleAdmin.Privileged())
	assert.False(t, RolePatient.Privileged())
	assert.False(t, Role("visitor").Privileged())
}
