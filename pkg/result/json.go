package result

import (
	"bytes"
	"encoding/json"
)

type wireResult struct {
	Succeeded          *bool           `json:"succeeded"`
	ErrorMessage       *string         `json:"errorMessage,omitempty"`
	Value              json.RawMessage `json:"value,omitempty"`
	ValidationFailures []Violation     `json:"validationFailures,omitempty"`
}

// MarshalJSON encodes the result as
// {"succeeded", "errorMessage", "value", "validationFailures"}. The cause is
// never encoded.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	succeeded := !r.failed
	w := wireResult{Succeeded: &succeeded}

	if r.failed {
		msg := r.message
		w.ErrorMessage = &msg
		w.ValidationFailures = r.violations
	} else if hasPayload(r.value) {
		raw, err := json.Marshal(r.value)
		if err != nil {
			return nil, err
		}
		w.Value = raw
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes a result encoded by MarshalJSON. Payloads that do not
// describe a valid outcome are rejected with an ErrMalformed error and the
// receiver is left unchanged.
func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var w wireResult
	if err := json.Unmarshal(data, &w); err != nil {
		return ErrMalformed.Wrap(err)
	}

	raw := bytes.TrimSpace(w.Value)
	rec := record{
		succeeded:  w.Succeeded,
		message:    w.ErrorMessage,
		violations: w.ValidationFailures,
		hasValue:   len(raw) > 0 && !bytes.Equal(raw, []byte("null")),
	}

	decoded, err := assemble(rec, func(v *T) error {
		return json.Unmarshal(raw, v)
	})
	if err != nil {
		return err
	}

	*r = decoded
	return nil
}
