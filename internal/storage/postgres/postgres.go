// Package postgres provides the PostgreSQL-backed implementation of the
// storage.Storage interface using the pgx driver and its connection pool.
//
// PostgreSQL is the production record store: the orchestration layer
// injects host/credentials through the environment, and the database's
// own unique index on email enforces the "exactly one writer wins"
// property on concurrent inserts with colliding addresses.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aanand-mishra/student-mgmt/internal/config"
	"github.com/aanand-mishra/student-mgmt/internal/storage"
	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// connectTimeout bounds the startup ping so an unreachable database
// fails fast with a clear error instead of hanging the boot sequence.
const connectTimeout = 10 * time.Second

// Postgres is the concrete implementation of storage.Storage.
// It holds a *pgxpool.Pool, which is safe for concurrent use by
// multiple goroutines — one pool serves every request handler.
type Postgres struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL using the database settings in cfg,
// verifies the connection with a ping, and creates the students table
// if it does not already exist.
//
// A nil error guarantees the record store is reachable: main can treat
// any error from here as fatal (fail fast at startup rather than on
// the first request).
func New(ctx context.Context, cfg *config.Config) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create pool: %w", err)
	}

	// pgxpool connects lazily; ping now so misconfiguration surfaces
	// at startup, not on the first request.
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	// Idempotent schema setup — safe to run on every startup.
	// SERIAL assigns ids from a sequence, so ids are never reused even
	// after a hard delete. UNIQUE on email is the conflict source for
	// the 409 responses.
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			id         SERIAL PRIMARY KEY,
			name       VARCHAR(100) NOT NULL,
			email      VARCHAR(100) UNIQUE NOT NULL,
			age        INTEGER NOT NULL,
			course     VARCHAR(100) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// isUniqueViolation reports whether err is the database signalling a
// violated unique constraint (the email index).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// CreateStudent inserts a row and returns it in one round trip via
// INSERT .. RETURNING — a single atomic statement, so two concurrent
// creates with the same email resolve inside the database: one row is
// written, the other caller gets ErrEmailExists.
func (p *Postgres) CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error) {
	var s types.Student

	err := p.pool.QueryRow(ctx, `
		INSERT INTO students (name, email, age, course)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, age, course, created_at
	`, in.Name, in.Email, in.Age, in.Course).Scan(
		&s.ID, &s.Name, &s.Email, &s.Age, &s.Course, &s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrEmailExists
		}
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	return s, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (p *Postgres) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	var s types.Student

	err := p.pool.QueryRow(ctx, `
		SELECT id, name, email, age, course, created_at
		FROM students
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.Course, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}

	return s, nil
}

// GetStudents returns all students ordered by id, i.e. insertion order.
func (p *Postgres) GetStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, name, email, age, course, created_at
		FROM students
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice so an empty table encodes
	// as [] in JSON, not null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var s types.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Age, &s.Course, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("GetStudents: scan row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID replaces the four mutable fields in a single
// UPDATE .. RETURNING statement. The WHERE clause doubles as the
// existence check: no matching row means ErrNoRows means 404. A unique
// violation means the new email already belongs to a different record.
// created_at is deliberately absent from the SET list — it is immutable.
func (p *Postgres) UpdateStudentByID(ctx context.Context, id int64, in types.StudentInput) (types.Student, error) {
	var s types.Student

	err := p.pool.QueryRow(ctx, `
		UPDATE students
		SET name = $1, email = $2, age = $3, course = $4
		WHERE id = $5
		RETURNING id, name, email, age, course, created_at
	`, in.Name, in.Email, in.Age, in.Course, id).Scan(
		&s.ID, &s.Name, &s.Email, &s.Age, &s.Course, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Student{}, storage.ErrStudentNotFound
		}
		if isUniqueViolation(err) {
			return types.Student{}, storage.ErrEmailExists
		}
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	return s, nil
}

// DeleteStudentByID removes a student row by primary key. The affected
// row count distinguishes "deleted" from "was never there".
func (p *Postgres) DeleteStudentByID(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrStudentNotFound
	}

	return nil
}

// Close releases the connection pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
