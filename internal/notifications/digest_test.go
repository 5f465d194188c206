package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philanthropists/outcome/pkg/result"
)

type sent struct {
	from, to, msg string
}

type fakeSMS struct {
	sent []sent
	err  error
}

func (f *fakeSMS) SendMessage(from, to, msg string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, sent{from, to, msg})
	return []byte(`{}`), nil
}

func Test_PushOnlyQueuesFailures(t *testing.T) {
	d := &Digest{}

	assert.False(t, d.Push("a", result.Ok(1)))
	assert.True(t, d.Push("b", result.Validate(result.Invalid("first"), result.Invalid("second"))))
	assert.Equal(t, 1, d.Size())
}

func Test_FlushSendsOneCondensedMessage(t *testing.T) {
	sms := &fakeSMS{}
	d := &Digest{Client: sms, From: "+1000", To: "+5700", Limit: 2}

	d.Push("Bancolombia-1", result.Fail[int]("message 1 did not match any Bancolombia pattern"))
	d.Push("Bancolombia-2", result.Validate(result.Invalid("value must be positive, got 0"), result.Invalid("date is not set")))
	d.Push("Bancolombia-3", result.FromError[int](errors.New("throttled")))

	require.NoError(t, d.Flush(context.Background()))

	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+1000", sms.sent[0].from)
	assert.Equal(t, "+5700", sms.sent[0].to)
	assert.Equal(t,
		"3 failed outcomes\n"+
			"Bancolombia-1: message 1 did not match any Bancolombia pattern\n"+
			"Bancolombia-2: value must be positive, got 0\n"+
			"... and 1 more",
		sms.sent[0].msg,
	)
	assert.Equal(t, 0, d.Size())
}

func Test_FlushEmptyDigestSendsNothing(t *testing.T) {
	sms := &fakeSMS{}
	d := &Digest{Client: sms}

	require.NoError(t, d.Flush(context.Background()))
	assert.Empty(t, sms.sent)
}

func Test_FlushInDryRunSendsNothing(t *testing.T) {
	sms := &fakeSMS{}
	d := &Digest{Client: sms, DryRun: true}
	d.Push("x", result.Fail[int]("nope"))

	require.NoError(t, d.Flush(context.Background()))
	assert.Empty(t, sms.sent)
	assert.Equal(t, 0, d.Size())
}

func Test_FlushReportsClientErrors(t *testing.T) {
	d := &Digest{Client: &fakeSMS{err: errors.New("unreachable")}}
	d.Push("x", result.Fail[int]("nope"))

	err := d.Flush(context.Background())

	assert.True(t, notifyErr.Has(err))
	assert.ErrorContains(t, err, "unreachable")
}

func Test_FlushWithoutClient(t *testing.T) {
	d := &Digest{}
	d.Push("x", result.Fail[int]("nope"))

	assert.Error(t, d.Flush(context.Background()))
}

func Test_CondenseSingleOutcome(t *testing.T) {
	assert.Equal(t, "1 failed outcome\nx: nope", condense([]string{"x: nope"}, DefaultLimit))
}
