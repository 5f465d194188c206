package result

import "strings"

// record is the decoded, not yet validated form shared by the wire codecs.
type record struct {
	succeeded  *bool
	message    *string
	violations []Violation
	hasValue   bool
}

func hasPayload[T any](v T) bool {
	_, empty := any(v).(Empty)
	return !empty
}

// assemble validates rec and builds the result it describes. Payloads that
// contradict the succeeded flag are rejected rather than repaired.
func assemble[T any](rec record, decodeValue func(*T) error) (Result[T], error) {
	if rec.succeeded == nil {
		return Result[T]{}, ErrMalformed.New("missing succeeded flag")
	}

	if *rec.succeeded {
		if rec.message != nil {
			return Result[T]{}, ErrMalformed.New("successful result carries an error message: %q", *rec.message)
		}
		if len(rec.violations) > 0 {
			return Result[T]{}, ErrMalformed.New("successful result carries %d validation failures", len(rec.violations))
		}

		var value T
		if rec.hasValue {
			if err := decodeValue(&value); err != nil {
				return Result[T]{}, ErrMalformed.Wrap(err)
			}
		}

		return Ok(value), nil
	}

	if rec.message == nil || isBlank(*rec.message) {
		return Result[T]{}, ErrMalformed.New("failed result without error message")
	}
	if rec.hasValue {
		return Result[T]{}, ErrMalformed.New("failed result carries a value")
	}
	if len(rec.violations) > 0 {
		msgs := make([]string, 0, len(rec.violations))
		for i, v := range rec.violations {
			if isBlank(v.Message) {
				return Result[T]{}, ErrMalformed.New("validation failure %d has no message", i)
			}
			msgs = append(msgs, v.Message)
		}

		if joined := strings.Join(msgs, Delimiter); joined != *rec.message {
			return Result[T]{}, ErrMalformed.New(
				"error message %q is not the join of its validation failures %q", *rec.message, joined,
			)
		}
	}

	return Result[T]{
		failed:     true,
		message:    *rec.message,
		violations: cloneViolations(rec.violations),
	}, nil
}
