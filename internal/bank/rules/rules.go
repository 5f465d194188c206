// Package rules holds the checks an extracted transaction must pass before
// it is accepted.
package rules

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/validation"
	"github.com/Philanthropists/outcome/pkg/result"
)

var (
	currencyCode  = regexp.MustCompile(`^[A-Z]{3}$`)
	accountNumber = regexp.MustCompile(`^\d+$`)
	// income notices name the receiving account by kind, e.g. "AHORROS"
	accountName = regexp.MustCompile(`^[\p{L}\d]+(?:\s[\p{L}\d]+)*$`)
)

func Transaction() []validation.Validator[*banktypes.TrxInfo] {
	return []validation.Validator[*banktypes.TrxInfo]{
		validation.NotBlank("description", func(t *banktypes.TrxInfo) string { return t.Description }),
		account,
		validation.Positive("value", func(t *banktypes.TrxInfo) float64 { return t.Value.Number }),
		validation.Matches("currency", currencyCode, func(t *banktypes.TrxInfo) string { return t.Value.Code }),
		knownType,
		validation.NotZeroTime("date", func(t *banktypes.TrxInfo) time.Time { return t.Date }),
	}
}

func account(_ context.Context, t *banktypes.TrxInfo) result.Verdict {
	re := accountNumber
	if t.Type == banktypes.Income {
		re = accountName
	}

	return result.Check(re.MatchString(t.Account), "account",
		fmt.Sprintf("%s account %q does not match %s", t.Type, t.Account, re.String()))
}

func knownType(_ context.Context, t *banktypes.TrxInfo) result.Verdict {
	return result.Check(t.Type.IsValid(), "type", "transaction type is undefined")
}

// Check validates trx with the transaction rules.
func Check(ctx context.Context, goroutines int, trx *banktypes.TrxInfo) result.Result[*banktypes.TrxInfo] {
	if trx == nil {
		return result.Fail[*banktypes.TrxInfo]("no transaction to validate")
	}

	return validation.Run(ctx, goroutines, trx, Transaction()...)
}
