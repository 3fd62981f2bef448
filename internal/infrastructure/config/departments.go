package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/Vishal-1503/AI-Voice-Based-Patient-Call-System/internal/domain"
)

// DepartmentFile is the on-disk shape of a site-specific department roster.
// Deployments that staff a different set of wards than the defaults can
// point DEPARTMENTS_FILE at a YAML file like:
//
//	departments:
//	  - Emergency
//	  - Cardiology
type DepartmentFile struct {
	Departments []string `yaml:"departments"`
}

// LoadDepartments returns the department roster advertised to clients and
// to the assistant's tool schema. With an empty path the built-in roster
// is returned.
func LoadDepartments(path string) ([]string, error) {
	if path == "" {
		return domain.Departments, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read departments file: %w", err)
	}

	var file DepartmentFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse departments file: %w", err)
	}
	if len(file.Departments) == 0 {
		return nil, fmt.Errorf("departments file %s lists no departments", path)
	}
	return file.Departments, nil
}
