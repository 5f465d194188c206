package result

import "strings"

// Delimiter separates the messages of failed verdicts in an aggregated
// failure message.
const Delimiter = "\n"

// Verdict is one validator's judgment.
type Verdict struct {
	Valid   bool
	Field   string
	Message string
}

func Pass() Verdict {
	return Verdict{Valid: true}
}

func Invalid(message string) Verdict {
	return Verdict{Message: message}
}

func InvalidField(field, message string) Verdict {
	return Verdict{Field: field, Message: message}
}

// Check passes when ok holds and otherwise fails with message for field.
func Check(ok bool, field, message string) Verdict {
	if ok {
		return Pass()
	}

	return InvalidField(field, message)
}

func (v Verdict) violation() Violation {
	msg := v.Message
	if isBlank(msg) {
		if v.Field != "" {
			msg = v.Field + " is invalid"
		} else {
			msg = "validation failed"
		}
	}

	return Violation{Field: v.Field, Message: msg}
}

// FromValidations folds verdicts into a single result. It succeeds with value
// when every verdict is valid, including when there are none. Otherwise it
// fails with the messages of the invalid verdicts joined by Delimiter in
// their original order, and the value is dropped.
func FromValidations[T any](verdicts []Verdict, value T) Result[T] {
	var violations []Violation
	for _, v := range verdicts {
		if !v.Valid {
			violations = append(violations, v.violation())
		}
	}

	if len(violations) == 0 {
		return Ok(value)
	}

	return fromViolations[T](violations)
}

// Validate folds verdicts into a result without payload.
func Validate(verdicts ...Verdict) Plain {
	return FromValidations(verdicts, Empty{})
}

func fromViolations[T any](violations []Violation) Result[T] {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}

	return Result[T]{
		failed:     true,
		message:    strings.Join(msgs, Delimiter),
		violations: violations,
	}
}
