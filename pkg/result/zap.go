package result

import "go.uber.org/zap/zapcore"

// MarshalLogObject logs the outcome without its payload. Unlike the wire
// codecs it includes the cause, since logs stay in process.
func (r Result[T]) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddBool("succeeded", !r.failed)
	if !r.failed {
		return nil
	}

	enc.AddString("errorMessage", r.message)
	if r.cause != nil {
		enc.AddString("cause", errorText(r.cause))
	}

	if len(r.violations) > 0 {
		return enc.AddArray("validationFailures", violationArray(r.violations))
	}

	return nil
}

func (v Violation) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if v.Field != "" {
		enc.AddString("field", v.Field)
	}
	enc.AddString("message", v.Message)
	return nil
}

type violationArray []Violation

func (vs violationArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, v := range vs {
		if err := enc.AppendObject(v); err != nil {
			return err
		}
	}
	return nil
}
