package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-mgmt/internal/client"
	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// stubAPI records every call so tests can assert which network
// operations a transition performed — in particular, that a failed
// local validation performed none.
type stubAPI struct {
	calls []string

	students  []types.Student
	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func (s *stubAPI) ListStudents(context.Context) ([]types.Student, error) {
	s.calls = append(s.calls, "list")
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.students, nil
}

func (s *stubAPI) CreateStudent(_ context.Context, in types.StudentInput) (types.Student, error) {
	s.calls = append(s.calls, "create")
	if s.createErr != nil {
		return types.Student{}, s.createErr
	}
	created := types.Student{
		ID: int64(len(s.students) + 1), Name: in.Name, Email: in.Email,
		Age: in.Age, Course: in.Course, CreatedAt: time.Now(),
	}
	s.students = append(s.students, created)
	return created, nil
}

func (s *stubAPI) UpdateStudent(_ context.Context, id int64, in types.StudentInput) (types.Student, error) {
	s.calls = append(s.calls, "update")
	if s.updateErr != nil {
		return types.Student{}, s.updateErr
	}
	for i, st := range s.students {
		if st.ID == id {
			s.students[i].Name = in.Name
			s.students[i].Email = in.Email
			s.students[i].Age = in.Age
			s.students[i].Course = in.Course
			return s.students[i], nil
		}
	}
	return types.Student{}, client.ErrNotFound
}

func (s *stubAPI) DeleteStudent(_ context.Context, id int64) error {
	s.calls = append(s.calls, "delete")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	for i, st := range s.students {
		if st.ID == id {
			s.students = append(s.students[:i], s.students[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

func validForm() Form {
	return Form{Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"}
}

func TestSubmitInvalidFormMakesNoNetworkCall(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
	}{
		{"age zero", func(f *Form) { f.Age = 0 }},
		{"age 151", func(f *Form) { f.Age = 151 }},
		{"missing email at-sign", func(f *Form) { f.Email = "annx.com" }},
		{"empty name", func(f *Form) { f.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubAPI{}
			state := NewState(api)
			state.Form = validForm()
			tt.mutate(&state.Form)

			state.Submit(context.Background())

			assert.Empty(t, api.calls, "validation failure must not reach the network")
			assert.NotEmpty(t, state.ErrMsg)
			// The form is kept so the user can correct it.
			assert.NotEqual(t, Form{}, state.Form)
		})
	}
}

func TestSubmitCreatesAndRefreshes(t *testing.T) {
	api := &stubAPI{}
	state := NewState(api)
	state.Form = validForm()

	state.Submit(context.Background())

	assert.Equal(t, []string{"create", "list"}, api.calls)
	assert.Equal(t, "student created", state.InfoMsg)
	assert.Empty(t, state.ErrMsg)
	assert.Equal(t, Form{}, state.Form, "form cleared after success")
	assert.Equal(t, ModeAdd, state.Mode)
	require.Len(t, state.Students, 1)
}

func TestSubmitConflictShowsSpecificMessage(t *testing.T) {
	api := &stubAPI{createErr: client.ErrConflict}
	state := NewState(api)
	state.Form = validForm()

	state.Submit(context.Background())

	assert.Equal(t, "email already exists", state.ErrMsg)
	assert.Equal(t, validForm(), state.Form, "form kept after failure")
	assert.Equal(t, []string{"create"}, api.calls, "no refresh after failure")
}

func TestSubmitGenericFailureMessage(t *testing.T) {
	api := &stubAPI{createErr: errors.New("connection refused")}
	state := NewState(api)
	state.Form = validForm()

	state.Submit(context.Background())

	assert.Equal(t, "failed to save student", state.ErrMsg)
	assert.Equal(t, validForm(), state.Form)
}

func TestEditPrefillsAndSubmitUpdates(t *testing.T) {
	api := &stubAPI{students: []types.Student{
		{ID: 7, Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"},
	}}
	state := NewState(api)
	state.Refresh(context.Background())

	require.NoError(t, state.BeginEdit(7))
	assert.Equal(t, ModeEdit, state.Mode)
	assert.Equal(t, int64(7), state.EditingID)
	assert.Equal(t, Form{Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"}, state.Form)

	state.Form.Age = 21
	state.Submit(context.Background())

	assert.Contains(t, api.calls, "update")
	assert.Equal(t, "student updated", state.InfoMsg)
	assert.Equal(t, ModeAdd, state.Mode, "edit state cleared after success")
	assert.Equal(t, int64(0), state.EditingID)
}

func TestBeginEditUnknownID(t *testing.T) {
	state := NewState(&stubAPI{})
	err := state.BeginEdit(42)
	assert.Error(t, err)
	assert.Equal(t, ModeAdd, state.Mode)
}

func TestCancelDiscardsEditsAndMessages(t *testing.T) {
	api := &stubAPI{students: []types.Student{
		{ID: 1, Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"},
	}}
	state := NewState(api)
	state.Refresh(context.Background())
	require.NoError(t, state.BeginEdit(1))

	state.Form.Name = "Edited"
	state.ErrMsg = "something"

	state.Cancel()

	assert.Equal(t, ModeAdd, state.Mode)
	assert.Equal(t, Form{}, state.Form)
	assert.Empty(t, state.ErrMsg)
	assert.Empty(t, state.InfoMsg)
}

func TestFailedFetchKeepsPreviousList(t *testing.T) {
	api := &stubAPI{students: []types.Student{
		{ID: 1, Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"},
	}}
	state := NewState(api)
	state.Refresh(context.Background())
	require.Len(t, state.Students, 1)

	api.listErr = errors.New("boom")
	state.Refresh(context.Background())

	assert.Equal(t, "failed to fetch students", state.ErrMsg)
	assert.Len(t, state.Students, 1, "prior valid state left intact")
}

func TestDeleteSuccessAndFailure(t *testing.T) {
	api := &stubAPI{students: []types.Student{
		{ID: 1, Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS"},
	}}
	state := NewState(api)
	state.Refresh(context.Background())

	state.Delete(context.Background(), 1)
	assert.Equal(t, "student deleted", state.InfoMsg)
	assert.Empty(t, state.Students)

	state.Delete(context.Background(), 1)
	assert.Equal(t, "student no longer exists", state.ErrMsg)
}
