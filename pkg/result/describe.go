package result

import (
	"fmt"
	"strings"
)

const maxCauseDepth = 32

// Describe renders err and the errors it wraps as a failure message. The
// first line is the text of err; every wrapped error adds a "caused by: "
// line unless its text was already rendered the way fmt.Errorf("...: %w")
// or errors.Join embed it. Errors with blank text, or whose Error method
// panics, render as their type name.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var lines, rendered []string

	var walk func(e error, depth int)
	walk = func(e error, depth int) {
		if e == nil || depth > maxCauseDepth {
			return
		}

		text := errorText(e)
		if text == "" && depth == 0 {
			text = typeName(e)
		}

		if text != "" && !embedded(rendered, text) {
			if len(lines) == 0 {
				lines = append(lines, text)
			} else {
				lines = append(lines, "caused by: "+text)
			}
			rendered = append(rendered, text)
		}

		for _, inner := range unwrap(e) {
			walk(inner, depth+1)
		}
	}
	walk(err, 0)

	if len(lines) == 0 {
		return typeName(err)
	}

	return strings.Join(lines, "\n")
}

// embedded reports whether text was already rendered whole: as an entire
// line, or as the tail of a line after ": ".
func embedded(rendered []string, text string) bool {
	for _, r := range rendered {
		wrapped := "\n" + r + "\n"
		if strings.Contains(wrapped, "\n"+text+"\n") || strings.Contains(wrapped, ": "+text+"\n") {
			return true
		}
	}

	return false
}

func errorText(err error) (text string) {
	defer func() {
		if recover() != nil {
			text = typeName(err)
		}
	}()

	return strings.TrimSpace(err.Error())
}

func typeName(err error) string {
	return fmt.Sprintf("%T", err)
}

func unwrap(err error) []error {
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		return u.Unwrap()
	case interface{ Unwrap() error }:
		if inner := u.Unwrap(); inner != nil {
			return []error{inner}
		}
	}

	return nil
}
