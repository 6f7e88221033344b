// Package student contains all HTTP handlers related to the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database.
// To inject dependencies we use a factory function that accepts the
// dependencies (storage) and returns a function with the exact
// signature the router needs. The inner function "closes over" the
// outer parameters:
//
//	router.HandleFunc("POST /api/students", student.New(storage))
//	//                                              ^^^^^^^^^^^^^
//	//                         New(storage) is called ONCE at startup.
//	//                         It returns a handler func which is called
//	//                         on EVERY incoming request.
//
// ERROR MAPPING:
// Validation failures → 400. storage.ErrStudentNotFound → 404.
// storage.ErrEmailExists → 409. Anything else is a record-store
// failure: logged with detail, returned to the client as a generic 500.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-mgmt/internal/storage"
	"github.com/aanand-mishra/student-mgmt/internal/types"
	"github.com/aanand-mishra/student-mgmt/internal/utils/response"
)

// decodeInput reads and validates the student payload shared by POST
// and PUT. A nil error means input is complete: all four fields present
// and age within [1, 150].
func decodeInput(r *http.Request) (types.StudentInput, response.Response, bool) {
	var in types.StudentInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		return in, response.GeneralError(errors.New("request body is empty")), false
	}
	if err != nil {
		return in, response.GeneralError(err), false
	}

	if err := validator.New().Struct(in); err != nil {
		validateErrs := err.(validator.ValidationErrors)
		return in, response.ValidationError(validateErrs), false
	}

	return in, response.Response{}, true
}

// parseID converts the {id} path segment to int64.
// r.PathValue works because the routes are registered with Go 1.22+
// method patterns ("GET /api/students/{id}").
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id: must be an integer")
	}
	return id, nil
}

// writeStorageError translates a storage failure into the right HTTP
// response. Sentinel errors carry client-safe messages; everything
// else is a dependency failure that must not leak internals.
func writeStorageError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrStudentNotFound):
		response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
	case errors.Is(err, storage.ErrEmailExists):
		response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
	default:
		log.Error(op, slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusInternalServerError, response.InternalError())
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
// Creates a new student from the JSON request body.
//
// Request body (JSON):
//
//	{ "name": "Ann", "email": "ann@x.com", "age": 20, "course": "CS" }
//
// Success response (201 Created) — the created record with the
// server-assigned id and created_at:
//
//	{ "id": 1, "name": "Ann", ..., "created_at": "2026-08-29T10:00:00Z" }
//
// Error responses:
//
//	400 Bad Request — empty body, malformed JSON, or failed validation
//	409 Conflict    — email already belongs to another student
//	500 Internal    — record store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(st storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("creating a student")

		in, errResp, ok := decodeInput(r)
		if !ok {
			response.WriteJSON(w, http.StatusBadRequest, errResp)
			return
		}

		created, err := st.CreateStudent(r.Context(), in)
		if err != nil {
			writeStorageError(w, log, "error creating student", err)
			return
		}

		log.Info("student created", slog.Int64("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
// Returns a JSON array of all students ordered by insertion (id).
// Returns an empty array [] (not null, not an error) when the store is
// empty.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(st storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("getting all students")

		students, err := st.GetStudents(r.Context())
		if err != nil {
			writeStorageError(w, log, "error getting students", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
// Fetches a single student by their primary key ID.
//
// Error responses:
//
//	400 Bad Request — id is not a valid integer
//	404 Not Found   — no student with that id
//	500 Internal    — record store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(st storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		log.Info("getting a student", slog.Int64("id", id))

		student, err := st.GetStudentByID(r.Context(), id)
		if err != nil {
			writeStorageError(w, log, "error getting student", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
// Replaces ALL four mutable fields of an existing student atomically;
// id and created_at are preserved. The payload shape and validation
// rules are identical to creation.
//
// Error responses:
//
//	400 Bad Request — invalid id, empty body, or validation failure
//	404 Not Found   — no student with that id (nothing is created)
//	409 Conflict    — new email belongs to a different student
//	500 Internal    — record store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(st storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		log.Info("updating a student", slog.Int64("id", id))

		in, errResp, ok := decodeInput(r)
		if !ok {
			response.WriteJSON(w, http.StatusBadRequest, errResp)
			return
		}

		updated, err := st.UpdateStudentByID(r.Context(), id, in)
		if err != nil {
			writeStorageError(w, log, "error updating student", err)
			return
		}

		log.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
// Permanently removes a student record (hard delete — this model has
// no referential dependents, so nothing cascades).
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request — invalid id
//	404 Not Found   — no student with that id
//	500 Internal    — record store failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(st storage.Storage, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		log.Info("deleting a student", slog.Int64("id", id))

		if err := st.DeleteStudentByID(r.Context(), id); err != nil {
			writeStorageError(w, log, "error deleting student", err)
			return
		}

		log.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
