// Package client is the typed HTTP client for the student API. The
// terminal UI is built on top of it, but it works for any Go caller.
//
// Error contract: 404 and 409 responses come back as the ErrNotFound
// and ErrConflict sentinels so callers can branch with errors.Is; every
// other non-2xx response becomes an *APIError carrying the status code
// and the server's message. The client never retries — failures are
// surfaced to the caller for manual retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aanand-mishra/student-mgmt/internal/types"
	"github.com/aanand-mishra/student-mgmt/internal/utils/response"
)

var (
	// ErrConflict is returned when the server rejects a write because
	// the email already belongs to another student (HTTP 409).
	ErrConflict = errors.New("email already exists")

	// ErrNotFound is returned when the requested student id does not
	// exist (HTTP 404).
	ErrNotFound = errors.New("student not found")
)

// APIError is any other non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to one student API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends one request and decodes the JSON response into out (when
// out is non-nil). Non-2xx responses are translated by checkError
// before any decoding happens.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkError(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// checkError maps a non-2xx response to the client error contract,
// pulling the human-readable message out of the server's standard
// error envelope when one is present.
func checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	msg := resp.Status
	var env response.Response
	if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Error != "" {
		msg = env.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}

// Health calls GET /health and reports whether the service answered.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// ListStudents calls GET /api/students.
func (c *Client) ListStudents(ctx context.Context) ([]types.Student, error) {
	var students []types.Student
	if err := c.do(ctx, http.MethodGet, "/api/students", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// GetStudent calls GET /api/students/{id}.
func (c *Client) GetStudent(ctx context.Context, id int64) (types.Student, error) {
	var s types.Student
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/students/%d", id), nil, &s); err != nil {
		return types.Student{}, err
	}
	return s, nil
}

// CreateStudent calls POST /api/students and returns the created
// record with its server-assigned id and created_at.
func (c *Client) CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error) {
	var s types.Student
	if err := c.do(ctx, http.MethodPost, "/api/students", in, &s); err != nil {
		return types.Student{}, err
	}
	return s, nil
}

// UpdateStudent calls PUT /api/students/{id} and returns the updated
// record.
func (c *Client) UpdateStudent(ctx context.Context, id int64, in types.StudentInput) (types.Student, error) {
	var s types.Student
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/students/%d", id), in, &s); err != nil {
		return types.Student{}, err
	}
	return s, nil
}

// DeleteStudent calls DELETE /api/students/{id}.
func (c *Client) DeleteStudent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/students/%d", id), nil, nil)
}
