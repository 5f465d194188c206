// Package result provides the outcome type shared by every component: a value
// that is either a success carrying a payload or a failure carrying a message,
// an optional cause and optionally the validation violations that produced it.
//
// Results are immutable once constructed and safe to share between
// goroutines. Domain failures are returned as values; only contract
// violations (blank failure messages, nil causes, propagating a success as a
// failure) panic, with an error of class ErrContract.
package result

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zeebo/errs"
)

var (
	// ErrContract classifies panics raised by factories that were asked to
	// build an invalid result.
	ErrContract = errs.Class("result contract")

	// ErrMalformed classifies decoding errors of serialized results that do
	// not describe a valid outcome.
	ErrMalformed = errs.Class("malformed result")
)

// Empty is the payload of results that carry no value.
type Empty struct{}

// Plain is a result without payload.
type Plain = Result[Empty]

// Violation is a single validation failure kept by a failed result.
type Violation struct {
	Field   string `json:"field,omitempty"   dynamodbav:"field,omitempty"`
	Message string `json:"message"           dynamodbav:"message"`
}

// Result is the outcome of an operation. The zero value is a success
// carrying the zero value of T.
type Result[T any] struct {
	failed     bool
	message    string
	cause      error
	violations []Violation
	value      T
}

// Success returns a successful result without payload.
func Success() Plain {
	return Plain{}
}

// Ok returns a successful result carrying value. The value itself may be the
// zero value of T, only the outcome matters.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail returns a failed result with the given message. It panics with
// ErrContract if the message is blank.
func Fail[T any](message string) Result[T] {
	if isBlank(message) {
		panic(ErrContract.New("failure message must not be blank"))
	}

	return Result[T]{
		failed:  true,
		message: message,
	}
}

// Failf is Fail with a formatted message.
func Failf[T any](format string, args ...any) Result[T] {
	return Fail[T](fmt.Sprintf(format, args...))
}

// FromError returns a failed result whose message is rendered from cause and
// its wrapped errors. The cause is kept for diagnostics only. It panics with
// ErrContract if cause is nil.
func FromError[T any](cause error) Result[T] {
	if cause == nil {
		panic(ErrContract.New("failure cause must not be nil"))
	}

	return Result[T]{
		failed:  true,
		message: Describe(cause),
		cause:   cause,
	}
}

// Of bridges the (value, error) convention: a nil err gives Ok(value),
// otherwise FromError(err) and value is dropped.
func Of[T any](value T, err error) Result[T] {
	if err != nil {
		return FromError[T](err)
	}

	return Ok(value)
}

// FailureFrom converts a failed result into a failed result of another
// payload type, keeping message, cause and violations. It panics with
// ErrContract if other succeeded.
func FailureFrom[U, T any](other Result[T]) Result[U] {
	if !other.failed {
		panic(ErrContract.New("cannot propagate a successful result as a failure"))
	}

	return Result[U]{
		failed:     true,
		message:    other.message,
		cause:      other.cause,
		violations: cloneViolations(other.violations),
	}
}

func (r Result[T]) Succeeded() bool {
	return !r.failed
}

func (r Result[T]) HasError() bool {
	return r.failed
}

// Message returns the failure message, or an empty string on success.
func (r Result[T]) Message() string {
	return r.message
}

// Cause returns the error the failure was built from, if any.
func (r Result[T]) Cause() error {
	return r.cause
}

// Value returns the payload and true on success. On failure the payload is
// never exposed: it returns the zero value of T and false.
func (r Result[T]) Value() (T, bool) {
	if r.failed {
		var zero T
		return zero, false
	}

	return r.value, true
}

// ValueOr returns the payload on success and def on failure.
func (r Result[T]) ValueOr(def T) T {
	if v, ok := r.Value(); ok {
		return v
	}

	return def
}

// Failures returns a copy of the validation violations of a failed result.
func (r Result[T]) Failures() []Violation {
	return cloneViolations(r.violations)
}

// Err returns nil on success and an *Error otherwise.
func (r Result[T]) Err() error {
	if !r.failed {
		return nil
	}

	return &Error{
		message:    r.message,
		cause:      r.cause,
		violations: cloneViolations(r.violations),
	}
}

func (r Result[T]) String() string {
	if r.failed {
		return "failure: " + r.message
	}

	return "success"
}

// Equal reports whether a and b hold the same outcome, message, violations
// and payload. Causes are not compared.
func Equal[T any](a, b Result[T]) bool {
	if a.failed != b.failed || a.message != b.message {
		return false
	}

	if !reflect.DeepEqual(normalize(a.violations), normalize(b.violations)) {
		return false
	}

	if a.failed {
		return true
	}

	return reflect.DeepEqual(a.value, b.value)
}

// Error is the error form of a failed result.
type Error struct {
	message    string
	cause      error
	violations []Violation
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Violations returns a copy of the validation violations behind the error.
func (e *Error) Violations() []Violation {
	return cloneViolations(e.violations)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func cloneViolations(vs []Violation) []Violation {
	if len(vs) == 0 {
		return nil
	}

	c := make([]Violation, len(vs))
	copy(c, vs)
	return c
}

func normalize(vs []Violation) []Violation {
	if len(vs) == 0 {
		return nil
	}
	return vs
}
