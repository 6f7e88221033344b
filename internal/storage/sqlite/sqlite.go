// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is the backend of choice for local development and for
// running the service somewhere a PostgreSQL instance is not available.
//
// Importing the sqlite3 package registers the driver with database/sql
// via the driver's init() function.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/student-mgmt/internal/config"
	"github.com/aanand-mishra/student-mgmt/internal/storage"
	"github.com/aanand-mishra/student-mgmt/internal/types"

	// Importing the driver registers "sqlite3" with database/sql; the
	// package is also used directly to inspect constraint errors.
	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	db *sql.DB
}

// New opens the SQLite database at cfg.Database.StoragePath, creates
// the students table if it does not already exist, and returns a
// ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — the first actual
	// connection happens on the first query, so ping to fail fast.
	db, err := sql.Open("sqlite3", cfg.Database.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	// Same shape and constraints as the PostgreSQL schema. UNIQUE on
	// email makes the driver report a constraint violation that we map
	// to storage.ErrEmailExists. AUTOINCREMENT guarantees ids are never
	// reused after a delete.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id         INTEGER   PRIMARY KEY AUTOINCREMENT,
			name       TEXT      NOT NULL,
			email      TEXT      NOT NULL UNIQUE,
			age        INTEGER   NOT NULL,
			course     TEXT      NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{db: db}, nil
}

// isUniqueViolation reports whether err is sqlite3 rejecting a write
// because of the UNIQUE index on email.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// CreateStudent inserts a new row into the students table.
//
// The ? placeholders keep user input out of the SQL text entirely —
// the driver sends query and values separately, so the engine treats
// the values as pure data, never as SQL syntax.
func (s *SQLite) CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error) {
	// SQLite has no server-side clock default worth trusting across
	// drivers, so created_at is assigned here and stored explicitly.
	createdAt := time.Now().UTC()

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO students (name, email, age, course, created_at) VALUES (?, ?, ?, ?, ?)",
		in.Name, in.Email, in.Age, in.Course, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrEmailExists
		}
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	// LastInsertId returns the auto-generated primary key of the new row.
	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return types.Student{
		ID:        lastID,
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Course:    in.Course,
		CreatedAt: createdAt,
	}, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
//
// QueryRow returns a single-row result; the "no rows" condition only
// surfaces when Scan is called, as sql.ErrNoRows.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, age, course, created_at FROM students WHERE id = ? LIMIT 1",
		id,
	).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Age,
		&student.Course,
		&student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows as a slice, ordered by id.
//
// Query (unlike QueryRow) returns *sql.Rows — a cursor over multiple
// rows. Always defer rows.Close() to release the database connection.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		// Explicitly list columns — never SELECT * — so adding a column
		// later cannot silently break Scan's ordering.
		"SELECT id, name, email, age, course, created_at FROM students ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice.
	// Returning [] instead of null in JSON is better API behaviour.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Age,
			&student.Course,
			&student.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, student)
	}

	// rows.Err() captures any error that occurred during iteration.
	// This is separate from Scan errors.
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces the four mutable fields of a student.
// Returns the updated record so the caller can echo it back to the
// client. created_at is not in the SET list — it is immutable.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, in types.StudentInput) (types.Student, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE students SET name = ?, email = ?, age = ?, course = ? WHERE id = ?",
		in.Name, in.Email, in.Age, in.Course, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrEmailExists
		}
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, storage.ErrStudentNotFound
	}

	// Re-fetch so we return exactly what is stored in the DB.
	return s.GetStudentByID(ctx, id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

// Close closes the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
