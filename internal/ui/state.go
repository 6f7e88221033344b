package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/student-mgmt/internal/client"
	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// API is the slice of the student API the UI needs. *client.Client
// satisfies it; tests substitute a recording stub.
type API interface {
	ListStudents(ctx context.Context) ([]types.Student, error)
	CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error)
	UpdateStudent(ctx context.Context, id int64, in types.StudentInput) (types.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

// Mode says what a submit means: create a new record, or replace the
// fields of the record being edited.
type Mode int

const (
	ModeAdd  Mode = iota // default state: the form creates a new student
	ModeEdit             // the form updates EditingID
)

// State is the whole client-side view state in one place: the list,
// the loading flag, the current message, the form values and the edit
// mode. Transitions are methods; nothing here is a global.
type State struct {
	api API

	Students  []types.Student
	Mode      Mode
	EditingID int64
	Form      Form

	Loading bool
	ErrMsg  string // set on any failure; never silently swallowed
	InfoMsg string // success feedback
}

// NewState returns the initial Idle/Add state with an empty list.
func NewState(api API) *State {
	return &State{api: api, Students: []types.Student{}}
}

func (s *State) clearMessages() {
	s.ErrMsg = ""
	s.InfoMsg = ""
}

// Refresh fetches the full list. On failure the previous list is kept
// intact — only the error message changes. Concurrent refreshes are
// not coordinated; last response wins, which is acceptable here.
func (s *State) Refresh(ctx context.Context) {
	s.Loading = true
	students, err := s.api.ListStudents(ctx)
	s.Loading = false

	if err != nil {
		s.ErrMsg = "failed to fetch students"
		return
	}
	s.Students = students
	s.ErrMsg = ""
}

// BeginEdit transitions to Editing(id), pre-filling the form from the
// listed record's current values.
func (s *State) BeginEdit(id int64) error {
	for _, st := range s.Students {
		if st.ID == id {
			s.Mode = ModeEdit
			s.EditingID = id
			s.Form = formFromStudent(st)
			s.clearMessages()
			return nil
		}
	}
	return fmt.Errorf("no student with id %d in the current list", id)
}

// Cancel discards in-progress edits and returns to Idle/Add. Only
// meaningful while editing.
func (s *State) Cancel() {
	s.Mode = ModeAdd
	s.EditingID = 0
	s.Form = Form{}
	s.clearMessages()
}

// Submit validates the form and issues a create (Idle/Add) or an
// update (Editing). A validation failure blocks the submission — no
// network call is made. On success the form and edit state are
// cleared and the list re-fetched; on failure the form is kept so the
// user can correct and retry.
func (s *State) Submit(ctx context.Context) {
	s.clearMessages()

	if err := s.Form.Validate(); err != nil {
		s.ErrMsg = err.Error()
		return
	}

	var err error
	if s.Mode == ModeEdit {
		_, err = s.api.UpdateStudent(ctx, s.EditingID, s.Form.Input())
	} else {
		_, err = s.api.CreateStudent(ctx, s.Form.Input())
	}

	switch {
	case errors.Is(err, client.ErrConflict):
		s.ErrMsg = "email already exists"
		return
	case errors.Is(err, client.ErrNotFound):
		s.ErrMsg = "student no longer exists"
		return
	case err != nil:
		s.ErrMsg = "failed to save student"
		return
	}

	if s.Mode == ModeEdit {
		s.InfoMsg = "student updated"
	} else {
		s.InfoMsg = "student created"
	}
	s.Mode = ModeAdd
	s.EditingID = 0
	s.Form = Form{}
	s.Refresh(ctx)
}

// Delete removes a student and re-fetches the list. The explicit user
// confirmation happens in the prompt loop before this is called.
func (s *State) Delete(ctx context.Context, id int64) {
	s.clearMessages()

	if err := s.api.DeleteStudent(ctx, id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			s.ErrMsg = "student no longer exists"
		} else {
			s.ErrMsg = "failed to delete student"
		}
		return
	}

	s.InfoMsg = "student deleted"
	s.Refresh(ctx)
}
