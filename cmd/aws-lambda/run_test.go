package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Philanthropists/outcome/internal/check"
)

const bancolombiaMail = "From: alertasynotificaciones@notificacionesbancolombia.com\r\n" +
	"Subject: Alertas y Notificaciones\r\n" +
	"Date: Wed, 04 Jan 2023 11:25:00 -0500\r\n" +
	"Message-Id: <1@bancolombia>\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"Bancolombia le informa compra por $30,000.00 a Prueba desde cta *0000.\r\n"

func Test_RunKeepsMessagePositions(t *testing.T) {
	c := &check.Check{DryRun: true, Goroutines: 2}
	event := Event{Messages: []string{
		"From: a@b.com\r\nDate: not a date\r\n\r\nbody\r\n",
		bancolombiaMail,
	}}

	resp, err := run(context.Background(), c, event)
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 2)

	assert.True(t, resp.Outcomes[0].HasError())
	assert.Contains(t, resp.Outcomes[0].Message(), "invalid Date header")

	trx, ok := resp.Outcomes[1].Value()
	require.True(t, ok)
	assert.Equal(t, "Prueba", trx.Description)
}

func Test_ResponseJSON(t *testing.T) {
	c := &check.Check{DryRun: true}

	resp, err := run(context.Background(), c, Event{Messages: []string{"From: a@b.com\r\n\r\nhola\r\n"}})
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded struct {
		Outcomes []map[string]any `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Outcomes, 1)

	o := decoded.Outcomes[0]
	assert.Equal(t, false, o["succeeded"])
	assert.Contains(t, o["errorMessage"], "from a@b.com")
	assert.NotContains(t, o, "value")
}
