package client_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-mgmt/internal/client"
	"github.com/aanand-mishra/student-mgmt/internal/http/handlers/health"
	"github.com/aanand-mishra/student-mgmt/internal/http/handlers/student"
	"github.com/aanand-mishra/student-mgmt/internal/storage/memory"
	"github.com/aanand-mishra/student-mgmt/internal/types"
)

// newTestAPI runs the real handlers over the in-memory store so the
// client is exercised against the actual server contract, not a mock
// of it.
func newTestAPI(t *testing.T) *client.Client {
	t.Helper()

	st := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Check())
	mux.HandleFunc("POST /api/students", student.New(st, log))
	mux.HandleFunc("GET /api/students", student.GetList(st, log))
	mux.HandleFunc("GET /api/students/{id}", student.GetByID(st, log))
	mux.HandleFunc("PUT /api/students/{id}", student.Update(st, log))
	mux.HandleFunc("DELETE /api/students/{id}", student.Delete(st, log))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return client.New(server.URL, 5*time.Second)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	assert.NoError(t, api.Health(context.Background()))
}

func TestCreateListUpdateDelete(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)

	created, err := api.CreateStudent(ctx, types.StudentInput{
		Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	students, err := api.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, created.ID, students[0].ID)

	got, err := api.GetStudent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", got.Email)

	updated, err := api.UpdateStudent(ctx, created.ID, types.StudentInput{
		Name: "Ann", Email: "ann@x.com", Age: 21, Course: "CS",
	})
	require.NoError(t, err)
	assert.Equal(t, 21, updated.Age)

	require.NoError(t, api.DeleteStudent(ctx, created.ID))

	students, err = api.ListStudents(ctx)
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestConflictAndNotFoundSentinels(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)

	_, err := api.CreateStudent(ctx, types.StudentInput{
		Name: "Ann", Email: "ann@x.com", Age: 20, Course: "CS",
	})
	require.NoError(t, err)

	_, err = api.CreateStudent(ctx, types.StudentInput{
		Name: "Bob", Email: "ann@x.com", Age: 30, Course: "Math",
	})
	assert.ErrorIs(t, err, client.ErrConflict)

	_, err = api.GetStudent(ctx, 42)
	assert.ErrorIs(t, err, client.ErrNotFound)

	_, err = api.UpdateStudent(ctx, 42, types.StudentInput{
		Name: "Ann", Email: "new@x.com", Age: 20, Course: "CS",
	})
	assert.ErrorIs(t, err, client.ErrNotFound)

	assert.ErrorIs(t, api.DeleteStudent(ctx, 42), client.ErrNotFound)
}

func TestValidationErrorIsAPIError(t *testing.T) {
	ctx := context.Background()
	api := newTestAPI(t)

	_, err := api.CreateStudent(ctx, types.StudentInput{
		Name: "Ann", Email: "ann@x.com", Age: 151, Course: "CS",
	})
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Age")
}
