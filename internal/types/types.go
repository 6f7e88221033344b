// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, client, and UI can all import types without
// depending on each other.
package types

import "time"

// Student represents a student record as it exists in the record store.
//
// ID and CreatedAt are assigned by the store at creation time and never
// change afterwards. Everything else is replaced wholesale on update.
//
// The json:"..." tags keep the wire shape lowercase; time.Time encodes
// as an RFC-3339 timestamp, which is what API consumers expect for
// created_at.
type Student struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Course    string    `json:"course"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentInput is the payload accepted by POST and PUT. It carries only
// the four mutable fields — clients never supply id or created_at.
//
// The validate:"..." rules are checked by go-playground/validator:
//
//	required      — field must be non-zero / non-empty
//	gte=1,lte=150 — age must lie in [1, 150]
type StudentInput struct {
	Name   string `json:"name"   validate:"required"`
	Email  string `json:"email"  validate:"required"`
	Age    int    `json:"age"    validate:"required,gte=1,lte=150"`
	Course string `json:"course" validate:"required"`
}
