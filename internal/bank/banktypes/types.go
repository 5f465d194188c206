package banktypes

import (
	"context"
	"time"

	"github.com/zeebo/errs"

	"github.com/Philanthropists/outcome/internal/types/currency"
	"github.com/Philanthropists/outcome/pkg/result"
)

type Message interface {
	ID() uint32
	From() []string
	Subject() string
	Date() time.Time
	Body() []byte
}

type TrxType int8

const (
	Expense TrxType = iota
	Income
	Transaction
)

func (t TrxType) String() string {
	switch t {
	case Expense:
		return "expense"
	case Income:
		return "income"
	case Transaction:
		return "transaction"
	default:
		return "undefined"
	}
}

func (t TrxType) IsValid() bool {
	return t.String() != "undefined"
}

func (t TrxType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TrxType) UnmarshalText(text []byte) error {
	for _, c := range []TrxType{Expense, Income, Transaction} {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}

	return errs.New("unknown transaction type %q", text)
}

// TrxInfo is a transaction extracted from a bank notification.
type TrxInfo struct {
	Date        time.Time       `json:"date"        dynamodbav:"Date"`
	Bank        string          `json:"bank"        dynamodbav:"Bank"`
	Action      string          `json:"action"      dynamodbav:"Action"`
	Description string          `json:"description" dynamodbav:"Description"`
	Account     string          `json:"account"     dynamodbav:"Account"`
	Value       currency.Amount `json:"value"       dynamodbav:"Value"`
	MessageID   uint32          `json:"message_id"  dynamodbav:"MessageId"`
	Type        TrxType         `json:"type"        dynamodbav:"Type"`
}

type BankDelegate interface {
	ComesFrom(from []string) bool
	FilterMessage(message Message) bool
	ExtractTransactionInfoFromMessage(ctx context.Context, message Message) result.Result[*TrxInfo]
	String() string
}
