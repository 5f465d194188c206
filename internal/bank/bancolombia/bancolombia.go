package bancolombia

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/internal/types/currency"
	regexp_util "github.com/Philanthropists/outcome/internal/util/regexp"
	"github.com/Philanthropists/outcome/internal/validation"
	"github.com/Philanthropists/outcome/pkg/result"
)

var bancolombiaErr = errs.Class("bancolombia")

type Bancolombia struct{}

func (b Bancolombia) String() string {
	return "Bancolombia"
}

func (b Bancolombia) ComesFrom(from []string) bool {
	for _, f := range from {
		switch f {
		case "alertasynotificaciones@notificacionesbancolombia.com":
			fallthrough
		case "alertasynotificaciones@bancolombia.com.co":
			return true
		}
	}

	return false
}

func (b Bancolombia) FilterMessage(msg banktypes.Message) bool {
	text := string(msg.Body())
	_, keep := regexp_util.MatchesAnyRegexp(regexMatching, text)

	return keep
}

var regexMatching = []*regexp_util.Match[banktypes.TrxType]{
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa (?P<type>\w+) por \$(?P<value>[0-9,\.]+) a (?P<place>.+) desde (?:cta|T\.CRED) \*(?P<account>\d{4})\.`,
		),
		Value: banktypes.Expense,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa (?P<type>\w+) por \$(?P<value>[0-9,\.]+) en (?P<place>[^\.]+)\..+T\.Cred \*(?P<account>\d{4})\.`,
		),
		Value: banktypes.Expense,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa (?P<type>\w+) por \$(?P<value>[0-9,\.]+) en (?P<place>.+)\..+T\.(?:Cred|Deb) \*(?P<account>\d{4})\.`,
		),
		Value: banktypes.Expense,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa (?P<type>\w+) por \$(?P<value>[0-9,\.]+) desde cta \*(?P<account>\d{4}).+cta (?P<place>\d{9,16})\.`,
		),
		Value: banktypes.Expense,
	},
	{
		Regexp: regexp.MustCompile(
			`Realizaste una (?P<type>\w+) con QR por \$(?P<value>[0-9,\.]+), desde cta \*(?P<account>\d{4}) a cta (?P<place>\d{9,16})\.`,
		),
		Value: banktypes.Expense,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa (?P<type>\w+) de pago de (?P<place>[A-Z\s]+) por \$(?P<value>[0-9,\.]+) en su cuenta (?P<account>[A-Z\s]+)\s.+\.`,
		),
		Value: banktypes.Income,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia te informa (?P<type>\w+) transferencia de (?P<place>[A-Z\s]+) por \$(?P<value>[0-9,\.]+) en la cuenta \*(?P<account>[0-9]+)\.`,
		),
		Value: banktypes.Income,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa un (?P<type>\w+) (?P<place>[\w\s]+) por \$(?P<value>[0-9,\.]+) en su Cuenta (?P<account>\w+)\.`,
		),
		Value: banktypes.Income,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia le informa un (?P<type>[\w\s]+) de (?P<place>[\w\s\.]+) por \$(?P<value>[0-9,\.]+) en su Cuenta (?P<account>\w+)\.`,
		),
		Value: banktypes.Income,
	},
	{
		Regexp: regexp.MustCompile(
			`Bancolombia te informa (?P<type>[\w\s]+) por \$(?P<value>[0-9,\.]+) a (?P<place>[\w\s\.]+) desde producto \*(?P<account>\w+)\.`,
		),
		Value: banktypes.Expense,
	},
}

var requiredFields = []string{"value", "type", "place", "account"}

func (b Bancolombia) ExtractTransactionInfoFromMessage(
	ctx context.Context,
	msg banktypes.Message,
) result.Result[*banktypes.TrxInfo] {
	text := string(msg.Body())

	selectedRegexp, ok := regexp_util.MatchesAnyRegexp(regexMatching, text)
	if !ok {
		return result.Failf[*banktypes.TrxInfo](
			"message %d did not match any %s pattern", msg.ID(), b,
		)
	}

	fields := selectedRegexp.ExtractFields(text)

	complete := validation.Run(ctx, 1, fields, validation.RequiredKeys(requiredFields...)...)
	if complete.HasError() {
		return result.FailureFrom[*banktypes.TrxInfo](complete)
	}

	value, err := getValueFromText(fields["value"])
	if err != nil {
		return result.FromError[*banktypes.TrxInfo](bancolombiaErr.Wrap(err))
	}

	return result.Ok(&banktypes.TrxInfo{
		Date:        msg.Date(),
		Bank:        b.String(),
		Action:      fields["type"],
		Description: strings.TrimSpace(fields["place"]),
		Account:     strings.TrimSpace(fields["account"]),
		Value:       value,
		MessageID:   msg.ID(),
		Type:        selectedRegexp.Value,
	})
}

// This would be way easier if Bancolombia had a consistent use of commas and dots inside the currency
var (
	currencyRegexp = regexp.MustCompile(
		`^(?P<integer>[0-9\.,]+)[\.,](?P<decimal>\d{2})$`,
	)
	currencyRegexpWithoutDecimal = regexp.MustCompile(`^(?P<integer>[0-9\.,]+)$`)
)

func getValueFromTextWithDecimal(s string) (string, error) {
	if !currencyRegexp.MatchString(s) {
		return "", errs.New("string [%s] does not match regex [%s]", s, currencyRegexp)
	}

	res := regexp_util.ExtractFields(s, currencyRegexp)
	integer := digitsOnly(res["integer"])
	decimal := res["decimal"]

	return integer + "." + decimal, nil
}

func getValueFromTextWithoutDecimal(s string) (string, error) {
	if !currencyRegexpWithoutDecimal.MatchString(s) {
		return "", errs.New(
			"string [%s] does not match regex without decimal [%s]",
			s, currencyRegexpWithoutDecimal,
		)
	}

	res := regexp_util.ExtractFields(s, currencyRegexpWithoutDecimal)

	return digitsOnly(res["integer"]) + ".0", nil
}

func digitsOnly(s string) string {
	s = strings.ReplaceAll(s, ",", "")
	return strings.ReplaceAll(s, ".", "")
}

func getValueFromText(s string) (currency.Amount, error) {
	valueStr, err := getValueFromTextWithDecimal(s)
	if err != nil {
		valueStr, err = getValueFromTextWithoutDecimal(s)
	}

	if err != nil {
		return currency.Amount{}, err
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return currency.Amount{}, errs.Wrap(err)
	}

	return currency.Amount{
		Code:   "COP",
		Number: value,
	}, nil
}
