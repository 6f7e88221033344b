// Package ui implements the interactive terminal client: an explicit
// state struct with the add/edit/delete/refresh transitions, plus the
// prompt loop that drives it.
package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// Form holds the in-progress form values. In edit mode it is pre-filled
// from the record being edited; cancel discards it.
type Form struct {
	Name   string
	Email  string
	Age    int
	Course string
}

// Validate mirrors the server-side rules without replacing them. It is
// the gate in front of every submit: a failing form never reaches the
// network.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(f.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(f.Email, "@") {
		return errors.New("email must contain @")
	}
	if f.Age < 1 || f.Age > 150 {
		return errors.New("age must be between 1 and 150")
	}
	if strings.TrimSpace(f.Course) == "" {
		return errors.New("course is required")
	}
	return nil
}

// Input converts the form to the API payload.
func (f Form) Input() types.StudentInput {
	return types.StudentInput{
		Name:   strings.TrimSpace(f.Name),
		Email:  strings.TrimSpace(f.Email),
		Age:    f.Age,
		Course: strings.TrimSpace(f.Course),
	}
}

// formFromStudent pre-fills a form with a record's current values
// (the Edit transition).
func formFromStudent(s types.Student) Form {
	return Form{
		Name:   s.Name,
		Email:  s.Email,
		Age:    s.Age,
		Course: s.Course,
	}
}

// parseAge is the shared age-field parser for the prompt loop.
func parseAge(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("age must be an integer")
	}
	if age < 1 || age > 150 {
		return 0, errors.New("age must be between 1 and 150")
	}
	return age, nil
}
