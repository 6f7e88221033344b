// Package memory provides an in-process implementation of the
// storage.Storage interface backed by a mutex-guarded map.
//
// Without a relational engine there is no constraint index to lean on,
// so email uniqueness is enforced here with a compare-and-insert under
// a single lock: the check and the write happen atomically, preserving
// the "exactly one writer wins" property for concurrent creates and
// updates with colliding emails.
//
// Used for demos (DB_DRIVER=memory) and by the handler tests, which
// need a Storage that works without any database server.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aanand-mishra/student-mgmt/internal/storage"
	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// Memory is the concrete in-process implementation of storage.Storage.
type Memory struct {
	mu       sync.Mutex
	students map[int64]types.Student
	byEmail  map[string]int64 // email → id, the uniqueness index
	nextID   int64            // monotonic; ids are never reused
}

// New returns an empty in-memory store.
func New() *Memory {
	return &Memory{
		students: make(map[int64]types.Student),
		byEmail:  make(map[string]int64),
		nextID:   1,
	}
}

// CreateStudent assigns the next id and created_at, then inserts. The
// email check and the map writes share one critical section — the
// compare-and-insert.
func (m *Memory) CreateStudent(_ context.Context, in types.StudentInput) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byEmail[in.Email]; taken {
		return types.Student{}, storage.ErrEmailExists
	}

	s := types.Student{
		ID:        m.nextID,
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Course:    in.Course,
		CreatedAt: time.Now().UTC(),
	}
	m.nextID++
	m.students[s.ID] = s
	m.byEmail[s.Email] = s.ID

	return s, nil
}

// GetStudentByID fetches a single student by id.
func (m *Memory) GetStudentByID(_ context.Context, id int64) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.students[id]
	if !ok {
		return types.Student{}, storage.ErrStudentNotFound
	}
	return s, nil
}

// GetStudents returns all students ordered by id.
func (m *Memory) GetStudents(_ context.Context) ([]types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	students := make([]types.Student, 0, len(m.students))
	for _, s := range m.students {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })

	return students, nil
}

// UpdateStudentByID replaces the mutable fields. The email index is
// consulted and rewritten under the same lock, so a concurrent update
// cannot slip a duplicate past the check. id and created_at survive.
func (m *Memory) UpdateStudentByID(_ context.Context, id int64, in types.StudentInput) (types.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.students[id]
	if !ok {
		return types.Student{}, storage.ErrStudentNotFound
	}
	if owner, taken := m.byEmail[in.Email]; taken && owner != id {
		return types.Student{}, storage.ErrEmailExists
	}

	updated := types.Student{
		ID:        old.ID,
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Course:    in.Course,
		CreatedAt: old.CreatedAt,
	}
	delete(m.byEmail, old.Email)
	m.students[id] = updated
	m.byEmail[updated.Email] = id

	return updated, nil
}

// DeleteStudentByID removes a student permanently. The id is not
// recycled: nextID only ever moves forward.
func (m *Memory) DeleteStudentByID(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.students[id]
	if !ok {
		return storage.ErrStudentNotFound
	}
	delete(m.students, id)
	delete(m.byEmail, s.Email)

	return nil
}

// Close is a no-op; there is nothing to release.
func (m *Memory) Close() error { return nil }
