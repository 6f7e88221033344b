package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/manifoldco/promptui"
)

// Menu actions. Edit/Delete only make sense with a populated list, but
// they are always offered — picking them on an empty list just reports
// that there is nothing to act on.
const (
	actionAdd     = "Add student"
	actionEdit    = "Edit student"
	actionDelete  = "Delete student"
	actionRefresh = "Refresh"
	actionQuit    = "Quit"
)

// Run drives the interactive loop: render list and messages, ask for
// an action, apply the transition, repeat. It returns when the user
// quits or the terminal is closed.
func Run(ctx context.Context, api API, out io.Writer) error {
	state := NewState(api)

	// On mount: Loading, then the initial list fetch.
	withSpinner(out, "fetching students", func() { state.Refresh(ctx) })

	for {
		fmt.Fprintln(out)
		renderMessages(out, state)
		renderStudents(out, state.Students)

		sel := promptui.Select{
			Label: "Action",
			Items: []string{actionAdd, actionEdit, actionDelete, actionRefresh, actionQuit},
		}
		_, action, err := sel.Run()
		if err != nil {
			// Ctrl+C / closed terminal ends the session cleanly.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}

		switch action {
		case actionAdd:
			state.Cancel() // ensure Idle/Add with a clean form
			if promptForm(state) {
				withSpinner(out, "saving", func() { state.Submit(ctx) })
			}

		case actionEdit:
			id, ok := promptStudentID(state, "Edit which id")
			if !ok {
				continue
			}
			if err := state.BeginEdit(id); err != nil {
				state.ErrMsg = err.Error()
				continue
			}
			// Aborting the form while editing is the Cancel action:
			// in-progress edits are discarded, back to Idle/Add.
			if promptForm(state) {
				withSpinner(out, "saving", func() { state.Submit(ctx) })
			} else {
				state.Cancel()
			}

		case actionDelete:
			id, ok := promptStudentID(state, "Delete which id")
			if !ok {
				continue
			}
			confirm := promptui.Prompt{
				Label:     fmt.Sprintf("Delete student %d", id),
				IsConfirm: true,
			}
			if _, err := confirm.Run(); err != nil {
				continue // not confirmed
			}
			withSpinner(out, "deleting", func() { state.Delete(ctx, id) })

		case actionRefresh:
			withSpinner(out, "fetching students", func() { state.Refresh(ctx) })

		case actionQuit:
			return nil
		}
	}
}

// withSpinner shows a progress indicator while fn runs — the visible
// form of the Loading state.
func withSpinner(out io.Writer, suffix string, fn func()) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(out))
	sp.Suffix = " " + suffix
	sp.Start()
	fn()
	sp.Stop()
}

// promptForm fills state.Form field by field, pre-filling current
// values in edit mode. Returns false if the user aborted.
//
// Each prompt re-asks until its own field is valid, and Submit runs
// Form.Validate again before anything touches the network.
func promptForm(state *State) bool {
	fields := []struct {
		label    string
		def      string
		validate promptui.ValidateFunc
		assign   func(string)
	}{
		{
			label: "Name",
			def:   state.Form.Name,
			validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return errors.New("name is required")
				}
				return nil
			},
			assign: func(v string) { state.Form.Name = v },
		},
		{
			label: "Email",
			def:   state.Form.Email,
			validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return errors.New("email is required")
				}
				if !strings.Contains(v, "@") {
					return errors.New("email must contain @")
				}
				return nil
			},
			assign: func(v string) { state.Form.Email = v },
		},
		{
			label: "Age",
			def:   ageDefault(state.Form.Age),
			validate: func(v string) error {
				_, err := parseAge(v)
				return err
			},
			assign: func(v string) { state.Form.Age, _ = parseAge(v) },
		},
		{
			label: "Course",
			def:   state.Form.Course,
			validate: func(v string) error {
				if strings.TrimSpace(v) == "" {
					return errors.New("course is required")
				}
				return nil
			},
			assign: func(v string) { state.Form.Course = v },
		},
	}

	for _, f := range fields {
		prompt := promptui.Prompt{
			Label:     f.label,
			Default:   f.def,
			AllowEdit: true,
			Validate:  f.validate,
		}
		v, err := prompt.Run()
		if err != nil {
			return false // aborted
		}
		f.assign(v)
	}
	return true
}

// promptStudentID asks for a student id present in the current list.
func promptStudentID(state *State, label string) (int64, bool) {
	if len(state.Students) == 0 {
		state.ErrMsg = "no students to act on"
		return 0, false
	}

	prompt := promptui.Prompt{
		Label: label,
		Validate: func(v string) error {
			if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
				return errors.New("id must be an integer")
			}
			return nil
		},
	}
	v, err := prompt.Run()
	if err != nil {
		return 0, false
	}
	id, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	return id, true
}

func ageDefault(age int) string {
	if age == 0 {
		return ""
	}
	return strconv.Itoa(age)
}
