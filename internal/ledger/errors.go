package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Swagat404/SettleUp/internal/storage"
)

// Kind classifies ledger failures.
type Kind string

const (
	// KindNotFound means a referenced user, group or bill does not exist.
	KindNotFound Kind = "not_found"
	// KindAlreadyExists means a duplicate membership, friendship or user.
	KindAlreadyExists Kind = "already_exists"
	// KindUnauthorized means the requester may not perform the action.
	KindUnauthorized Kind = "unauthorized"
	// KindInvalidSplit means a split had no participants.
	KindInvalidSplit Kind = "invalid_split"
	// KindInvalidInput means a request argument was rejected.
	KindInvalidInput Kind = "invalid_input"
	// KindPartialFailure means a multi-step operation stopped partway and
	// left rows behind.
	KindPartialFailure Kind = "partial_failure"
	// KindUpstream means the store or an external collaborator failed.
	KindUpstream Kind = "upstream_error"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrAlreadyExists  = &Error{Kind: KindAlreadyExists}
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrInvalidSplit   = &Error{Kind: KindInvalidSplit}
	ErrInvalidInput   = &Error{Kind: KindInvalidInput}
	ErrPartialFailure = &Error{Kind: KindPartialFailure}
	ErrUpstream       = &Error{Kind: KindUpstream}
)

// Error is the ledger's error type.
type Error struct {
	Kind Kind
	Op   string // ledger operation, e.g. "DeleteGroup"

	// Step is the step that failed in a multi-step operation.
	Step string
	// EntityID is the group, bill or user the failure is about.
	EntityID string

	// Completed lists the steps that took effect before Step failed.
	Completed []string
	// Written lists IDs of rows left in the store by a partial write.
	Written []string
	// Failed lists IDs whose individual writes failed.
	Failed []string

	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(strings.ReplaceAll(string(e.Kind), "_", " "))
	if e.Step != "" {
		fmt.Fprintf(&b, " at step %s", e.Step)
	}
	if e.EntityID != "" {
		fmt.Fprintf(&b, " (%s)", e.EntityID)
	}
	if len(e.Failed) > 0 {
		fmt.Fprintf(&b, " failed=[%s]", strings.Join(e.Failed, ", "))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, op, entityID string, cause error) *Error {
	return &Error{Kind: kind, Op: op, EntityID: entityID, Cause: cause}
}

// fromStore classifies a store error: missing rows become KindNotFound,
// anything else KindUpstream.
func fromStore(op, entityID string, err error) *Error {
	if errors.Is(err, storage.ErrNotFound) {
		return newError(KindNotFound, op, entityID, err)
	}
	return newError(KindUpstream, op, entityID, err)
}
