package sample

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/sheetsmith/pkg/models"
)

// ErrNoEmployees is returned when a data file lists no employees.
var ErrNoEmployees = errors.New("data file lists no employees")

// employeeFile is the YAML layout of an employee data file:
//
//	employees:
//	  - id: EMP-001
//	    name: Johnson, Jack
type employeeFile struct {
	Employees []models.Employee `yaml:"employees"`
}

// LoadEmployees reads employees from a YAML data file.
func LoadEmployees(path string) ([]models.Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return ParseEmployees(data)
}

// ParseEmployees decodes the YAML employee layout and validates each row.
func ParseEmployees(data []byte) ([]models.Employee, error) {
	var f employeeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	if len(f.Employees) == 0 {
		return nil, ErrNoEmployees
	}
	for i, e := range f.Employees {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("employee %d: %w", i+1, err)
		}
	}
	return f.Employees, nil
}

// MarshalEmployees renders employees in the data file layout.
func MarshalEmployees(employees []models.Employee) ([]byte, error) {
	data, err := yaml.Marshal(employeeFile{Employees: employees})
	if err != nil {
		return nil, fmt.Errorf("marshal employees: %w", err)
	}
	return data, nil
}
