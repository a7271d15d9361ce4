package model

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Engine failures are returned as *Error values whose
// Kind is one of these, so callers test with errors.Is(err, model.ErrRead).
var (
	ErrCreate    = errors.New("CreateError")
	ErrUpdate    = errors.New("UpdateError")
	ErrDelete    = errors.New("DeleteError")
	ErrQuery     = errors.New("QueryError")
	ErrRead      = errors.New("ReadError")
	ErrObID      = errors.New("ObIdError")
	ErrDocument  = errors.New("CrudDocumentError")
	ErrNoSession = errors.New("NoSession")
	ErrCountFail = errors.New("CountFail")
)

// Error wraps an underlying failure with its taxonomy kind.
type Error struct {
	Kind error
	Err  error
}

// Wrap returns an *Error of the given kind. A nil cause yields the bare kind.
func Wrap(kind error, err error) error {
	if err == nil {
		return kind
	}
	return &Error{Kind: kind, Err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// KindOf returns the taxonomy kind of err, or nil when err is not one of ours.
func KindOf(err error) error {
	for _, kind := range []error{ErrCreate, ErrUpdate, ErrDelete, ErrQuery, ErrRead, ErrObID, ErrDocument, ErrNoSession, ErrCountFail} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	var cant *CantCreateModelManagerProviderError
	if errors.As(err, &cant) {
		return cant
	}
	return nil
}

// CantCreateModelManagerProviderError indicates the store connection could
// not be established.
type CantCreateModelManagerProviderError struct {
	Reason string
}

func (e *CantCreateModelManagerProviderError) Error() string {
	return fmt.Sprintf("CantCreateModelManagerProvider: %s", e.Reason)
}

// EntityNotFoundError is reserved; no CRUD operation raises it yet.
type EntityNotFoundError struct {
	Entity string
	ID     string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// UniqueViolationError describes a rejected insert. It is reported inside an
// ErrCreate, never on its own.
type UniqueViolationError struct {
	Table      string
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %s: %s", e.Table, e.Constraint)
}

// ListLimitOverMaxError is reserved for list limits.
type ListLimitOverMaxError struct {
	Max    int64
	Actual int64
}

func (e *ListLimitOverMaxError) Error() string {
	return fmt.Sprintf("list limit %d over max %d", e.Actual, e.Max)
}
