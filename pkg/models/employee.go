package models

import (
	"errors"
	"strings"
)

// ErrEmptyEmployeeID is returned when an employee has no identifier.
var ErrEmptyEmployeeID = errors.New("employee id is empty")

// Employee is one row of the sample employee table.
type Employee struct {
	// ID is the employee identifier, e.g. "EMP-001".
	ID string `json:"id" yaml:"id"`
	// Name is the display name, "Last, First".
	Name string `json:"name" yaml:"name"`
}

// Validate checks that the employee can be written as a table row.
func (e Employee) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyEmployeeID
	}
	return nil
}

// EmployeeColumns are the header names of the employee table, in order.
var EmployeeColumns = []string{"EmployeeId", "Name"}

// SampleEmployees returns the built-in sample rows.
func SampleEmployees() []Employee {
	return []Employee{
		{ID: "EMP-001", Name: "Johnson, Jack"},
		{ID: "EMP-002", Name: "Jackson, John"},
	}
}
