// Package domain defines error types for the inventory system.
package domain

import (
	"errors"
	"fmt"
)

// ValidationError is returned when a value violates a product invariant
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid product: field=%s, reason=%s, value=%v", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// DuplicateKeyError is returned when adding a product whose ID is already taken
type DuplicateKeyError struct {
	ID string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate product: id=%s already exists", e.ID)
}

func (e *DuplicateKeyError) Is(target error) bool {
	_, ok := target.(*DuplicateKeyError)
	return ok
}

// NotFoundError is returned when no product has the given ID
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: id=%s", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// StorageError wraps a read or write failure against durable storage.
// The in-memory inventory is never modified when one is returned.
type StorageError struct {
	Op   string // "read", "write", "open", ...
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool {
	_, ok := target.(*StorageError)
	return ok
}

// CorruptDataError is returned by a load whose input is not in the expected
// format at all. Nothing is loaded in that case.
type CorruptDataError struct {
	Path string
	Err  error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt data in %s: %v", e.Path, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool {
	_, ok := target.(*CorruptDataError)
	return ok
}

// MalformedRecordError describes a single persisted record that was skipped
// during a load. Position is the 1-based line, element or row number.
type MalformedRecordError struct {
	Position int
	Err      error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record %d skipped: %v", e.Position, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Helper functions for creating errors with context

func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{Field: field, Reason: reason, Value: value}
}

func NewDuplicateKeyError(id string) error {
	return &DuplicateKeyError{ID: id}
}

func NewNotFoundError(id string) error {
	return &NotFoundError{ID: id}
}

func NewStorageError(op, path string, err error) error {
	return &StorageError{Op: op, Path: path, Err: err}
}

func NewCorruptDataError(path string, err error) error {
	return &CorruptDataError{Path: path, Err: err}
}

// Type assertion helpers for use with errors.As()

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDuplicateKeyError(err error) bool {
	var de *DuplicateKeyError
	return errors.As(err, &de)
}

func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

func IsCorruptDataError(err error) bool {
	var ce *CorruptDataError
	return errors.As(err, &ce)
}
