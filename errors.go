package tokcompress

import (
	"errors"
	"fmt"
)

// Kind identifies which of the taxonomy's error classes a failure belongs
// to. Every Kind is fatal: the core never retries or returns a partial
// result.
type Kind int

const (
	// KindConfigInvalid covers contradictory bounds or an empty meta range.
	KindConfigInvalid Kind = iota + 1
	// KindTokenRangeCollision covers an input token landing in the meta or
	// control range.
	KindTokenRangeCollision
	// KindMemoryExceeded covers a buffer estimate exceeding the configured cap.
	KindMemoryExceeded
	// KindMalformedStream covers a corrupt dictionary section during decompress.
	KindMalformedStream
	// KindUndefinedMetaToken covers a body reference to a missing dictionary entry.
	KindUndefinedMetaToken
	// KindCycle covers a back-edge in the definition graph.
	KindCycle
	// KindTruncated covers a stream ending mid-entry.
	KindTruncated
	// KindVerificationFailure covers a Config.Verify round-trip mismatch.
	KindVerificationFailure
)

func (k Kind) String() string {
	switch k {
	case KindConfigInvalid:
		return "ConfigInvalid"
	case KindTokenRangeCollision:
		return "TokenRangeCollision"
	case KindMemoryExceeded:
		return "MemoryExceeded"
	case KindMalformedStream:
		return "MalformedStream"
	case KindUndefinedMetaToken:
		return "UndefinedMetaToken"
	case KindCycle:
		return "Cycle"
	case KindTruncated:
		return "Truncated"
	case KindVerificationFailure:
		return "VerificationFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type returned by every fatal condition in this
// package. Offset is the token index at which the defect was detected, or
// -1 when no single offset applies.
type Error struct {
	Kind   Kind
	Offset int
	Err    error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("tokcompress: %s at offset %d: %v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("tokcompress: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the Kind of err if it (or something it wraps) is an
// *Error, and ok=false otherwise.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newError(kind Kind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Err: fmt.Errorf(format, args...)}
}
