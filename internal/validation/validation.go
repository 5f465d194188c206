// Package validation runs independent checks over a value and folds their
// verdicts into a single result.
package validation

import (
	"context"
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/Philanthropists/outcome/pkg/pipe"
	"github.com/Philanthropists/outcome/pkg/result"
)

// Validator judges a single aspect of a value.
type Validator[T any] func(ctx context.Context, value T) result.Verdict

// Run executes validators concurrently using up to goroutines workers (the
// number of CPUs when not positive). Verdicts are collected in the order the
// validators were given before being folded, so the failure message does not
// depend on scheduling. If ctx ends first the result carries ctx.Err().
func Run[T any](ctx context.Context, goroutines int, value T, validators ...Validator[T]) result.Result[T] {
	if goroutines <= 0 {
		goroutines = runtime.NumCPU()
	}

	if err := ctx.Err(); err != nil {
		return result.FromError[T](err)
	}

	verdicts, err := pipe.Ordered(ctx.Done(), goroutines, validators, func(v Validator[T]) result.Verdict {
		return judge(ctx, v, value)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return result.FromError[T](err)
	}

	return result.FromValidations(verdicts, value)
}

func judge[T any](ctx context.Context, v Validator[T], value T) (verdict result.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			verdict = result.Invalid(fmt.Sprintf("validator panicked: %v", r))
		}
	}()

	return v(ctx, value)
}

// NotBlank fails when the selected string is empty or whitespace.
func NotBlank[T any](field string, get func(T) string) Validator[T] {
	return func(_ context.Context, v T) result.Verdict {
		return result.Check(strings.TrimSpace(get(v)) != "", field, field+" is required")
	}
}

// Matches fails when the selected string does not match re.
func Matches[T any](field string, re *regexp.Regexp, get func(T) string) Validator[T] {
	return func(_ context.Context, v T) result.Verdict {
		s := get(v)
		return result.Check(re.MatchString(s), field,
			fmt.Sprintf("%s %q does not match %s", field, s, re.String()))
	}
}

type number interface {
	constraints.Integer | constraints.Float
}

// Positive fails when the selected number is zero or negative.
func Positive[T any, N number](field string, get func(T) N) Validator[T] {
	return func(_ context.Context, v T) result.Verdict {
		n := get(v)
		return result.Check(n > 0, field, fmt.Sprintf("%s must be positive, got %v", field, n))
	}
}

// NotZeroTime fails when the selected time is the zero time.
func NotZeroTime[T any](field string, get func(T) time.Time) Validator[T] {
	return func(_ context.Context, v T) result.Verdict {
		return result.Check(!get(v).IsZero(), field, field+" is not set")
	}
}

// RequiredKeys returns one validator per key, each failing when the key is
// missing from the map.
func RequiredKeys(keys ...string) []Validator[map[string]string] {
	vs := make([]Validator[map[string]string], 0, len(keys))
	for _, k := range keys {
		k := k
		vs = append(vs, func(_ context.Context, fields map[string]string) result.Verdict {
			_, ok := fields[k]
			return result.Check(ok, k, k+" is missing")
		})
	}

	return vs
}
