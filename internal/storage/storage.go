// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero handler changes. This repository
//     ships three backends: PostgreSQL (production), SQLite (dev), and
//     an in-process memory store (demo / tests).
//
//   - Writing tests = pass any backend that satisfies the interface.
//     The memory backend needs no database server at all.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// Sentinel errors shared by every backend. Handlers translate these
// into HTTP status codes (404 and 409); anything else is treated as a
// dependency failure and surfaced as a 500 with a generic message.
//
// Backends must return exactly these values (possibly wrapped with %w)
// so callers can match them with errors.Is.
var (
	// ErrStudentNotFound means no row matched the requested id.
	ErrStudentNotFound = errors.New("student not found")

	// ErrEmailExists means the email uniqueness constraint was violated.
	// The record store's constraint engine guarantees that of two
	// concurrent writers with the same email, exactly one succeeds and
	// the other observes this error.
	ErrEmailExists = errors.New("email already exists")
)

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
//
// Every method takes a context.Context so a cancelled HTTP request
// stops its query instead of holding a pool connection hostage.
type Storage interface {
	// CreateStudent inserts a new student record in a single atomic
	// statement and returns the created record with its server-assigned
	// id and created_at. Returns ErrEmailExists on a duplicate email.
	CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns ErrStudentNotFound if no row matches.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every student ordered by id (insertion order).
	// Returns an empty slice (not nil) if there are no students.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// UpdateStudentByID replaces the four mutable fields of an existing
	// student and returns the updated record. id and created_at are
	// never touched. Returns ErrStudentNotFound for an unknown id and
	// ErrEmailExists when the new email belongs to a different record.
	UpdateStudentByID(ctx context.Context, id int64, in types.StudentInput) (types.Student, error)

	// DeleteStudentByID removes a student record permanently (hard
	// delete, no tombstone). Returns ErrStudentNotFound for unknown ids.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Close releases the backend's resources (connection pools, file
	// handles). Safe to call more than once.
	Close() error
}
