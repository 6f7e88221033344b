package ui

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// renderStudents prints the student list as a table.
func renderStudents(out io.Writer, students []types.Student) {
	if len(students) == 0 {
		fmt.Fprintln(out, "No students yet.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "NAME", "EMAIL", "AGE", "COURSE", "CREATED"})
	for _, s := range students {
		t.AppendRow(table.Row{
			s.ID, s.Name, s.Email, s.Age, s.Course,
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
}

// renderMessages prints the current error or success message, if any.
func renderMessages(out io.Writer, s *State) {
	if s.ErrMsg != "" {
		fmt.Fprintf(out, "✗ %s\n", s.ErrMsg)
	}
	if s.InfoMsg != "" {
		fmt.Fprintf(out, "✓ %s\n", s.InfoMsg)
	}
}
