package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-mgmt/internal/config"
	"github.com/aanand-mishra/student-mgmt/internal/storage"
	"github.com/aanand-mishra/student-mgmt/internal/types"
)

func newTestStore(t *testing.T) *SQLite {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.StoragePath = filepath.Join(t.TempDir(), "students.db")

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func input(name, email string, age int, course string) types.StudentInput {
	return types.StudentInput{Name: name, Email: email, Age: age, Course: course}
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateStudent(ctx, input("Ann", "ann@x.com", 20, "CS"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.Age, got.Age)
	assert.Equal(t, created.Course, got.Course)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, 0)
}

func TestUniqueEmailConstraint(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateStudent(ctx, input("Ann", "ann@x.com", 20, "CS"))
	require.NoError(t, err)

	_, err = s.CreateStudent(ctx, input("Bob", "ann@x.com", 30, "Math"))
	assert.ErrorIs(t, err, storage.ErrEmailExists)

	students, err := s.GetStudents(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 1)
}

func TestUpdateMapsConflictAndNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.UpdateStudentByID(ctx, 42, input("Ann", "ann@x.com", 20, "CS"))
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	_, err = s.CreateStudent(ctx, input("Ann", "ann@x.com", 20, "CS"))
	require.NoError(t, err)
	bob, err := s.CreateStudent(ctx, input("Bob", "bob@x.com", 30, "Math"))
	require.NoError(t, err)

	_, err = s.UpdateStudentByID(ctx, bob.ID, input("Bob", "ann@x.com", 30, "Math"))
	assert.ErrorIs(t, err, storage.ErrEmailExists)

	updated, err := s.UpdateStudentByID(ctx, bob.ID, input("Bobby", "bob@x.com", 31, "Bio"))
	require.NoError(t, err)
	assert.Equal(t, bob.ID, updated.ID)
	assert.Equal(t, "Bobby", updated.Name)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, "Bio", updated.Course)
}

func TestDeleteHardRemovesRow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.CreateStudent(ctx, input("Ann", "ann@x.com", 20, "CS"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteStudentByID(ctx, created.ID))

	_, err = s.GetStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)

	err = s.DeleteStudentByID(ctx, created.ID)
	assert.ErrorIs(t, err, storage.ErrStudentNotFound)
}

func TestEmptyListing(t *testing.T) {
	students, err := newTestStore(t).GetStudents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
}
