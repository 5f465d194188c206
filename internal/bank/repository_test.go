package bank

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philanthropists/outcome/internal/bank/banktypes"
	"github.com/Philanthropists/outcome/pkg/result"
)

type message struct {
	from []string
}

func (m message) ID() uint32      { return 1 }
func (m message) From() []string  { return m.from }
func (m message) Subject() string { return "" }
func (m message) Date() time.Time { return time.Time{} }
func (m message) Body() []byte    { return nil }

type fakeBank struct {
	name   string
	sender string
}

func (b fakeBank) ComesFrom(from []string) bool {
	for _, f := range from {
		if f == b.sender {
			return true
		}
	}
	return false
}

func (b fakeBank) FilterMessage(banktypes.Message) bool { return true }

func (b fakeBank) ExtractTransactionInfoFromMessage(
	context.Context, banktypes.Message,
) result.Result[*banktypes.TrxInfo] {
	return result.Fail[*banktypes.TrxInfo]("not implemented")
}

func (b fakeBank) String() string { return b.name }

func Test_DefaultBanks(t *testing.T) {
	banks := Repository{}.GetBanks(context.Background())

	require.Len(t, banks, 1)
	assert.Equal(t, "Bancolombia", banks[0].String())
}

func Test_SelectBankBySender(t *testing.T) {
	r := Repository{Banks: []banktypes.BankDelegate{
		fakeBank{name: "first", sender: "a@bank.com"},
		fakeBank{name: "second", sender: "b@bank.com"},
	}}

	b, ok := r.Select(context.Background(), message{from: []string{"x@y.com", "b@bank.com"}})
	require.True(t, ok)
	assert.Equal(t, "second", b.String())

	_, ok = r.Select(context.Background(), message{from: []string{"x@y.com"}})
	assert.False(t, ok)
}

func Test_SelectBancolombia(t *testing.T) {
	b, ok := Repository{}.Select(context.Background(),
		message{from: []string{"alertasynotificaciones@notificacionesbancolombia.com"}})

	require.True(t, ok)
	assert.Equal(t, "Bancolombia", b.String())
}
