package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

func TestLoadDepartmentsDefault(t *testing.T) {
	departments, err := LoadDepartments("")
	require.NoError(t, err)
	assert.Equal(t, domain.Departments, departments)
}

func TestLoadDepartmentsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "departments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("departments:\n  - Emergency\n  - Cardiology\n"), 0o644))

	departments, err := LoadDepartments(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emergency", "Cardiology"}, departments)
}

func TestLoadDepartmentsErrors(t *testing.T) {
	_, err := LoadDepartments("/nonexistent/departments.yaml")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("departments: []\n"), 0o644))
	_, err = LoadDepartments(empty)
	assert.Error(t, err)
}
