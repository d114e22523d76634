package pix

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayloadWithTxIDExact(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("3.99")
	got := buildPayloadWithTxID("11948587422", amount, "Carta abc", "1234567890abcdef")

	want := "00020126580014BR.GOV.BCB.PIX013611948587422" +
		"52040000530398654043.99" +
		"5802BR5920CARTAS DE AMOR6009SAO PAULO62070503***" +
		"6304Cart1234567890abcdef"
	assert.Equal(t, want, got)
}

func TestBuildPayloadStructure(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("3.99")
	payload := BuildPayload("11948587422", amount, "Carta abc")

	// Fixed prefix with the merchant key in the BR.GOV.BCB.PIX slot.
	assert.True(t, strings.HasPrefix(payload, "00020126580014BR.GOV.BCB.PIX013611948587422"))

	// Amount field: tag 54, length of the rendered amount, then the amount.
	assert.Contains(t, payload, "54043.99")

	// Merchant name / city / additional data template are positional.
	assert.Contains(t, payload, "5802BR5920CARTAS DE AMOR6009SAO PAULO62070503***")

	// Description slot holds the first four escaped bytes, then 16 txid chars.
	idx := strings.Index(payload, "6304")
	require.NotEqual(t, -1, idx)
	tail := payload[idx+len("6304"):]
	require.Len(t, tail, 4+16)
	assert.Equal(t, "Cart", tail[:4])
}

func TestBuildPayloadAmountWidth(t *testing.T) {
	t.Parallel()

	payload := BuildPayload("chave@pix.com", decimal.RequireFromString("12.5"), "Carta x")
	// 12.5 renders as 12.50 (5 bytes), so the length digit is 5.
	assert.Contains(t, payload, "540512.50")
}

func TestBuildPayloadRandomTxID(t *testing.T) {
	t.Parallel()

	amount := decimal.RequireFromString("3.99")
	a := BuildPayload("11948587422", amount, "Carta abc")
	b := BuildPayload("11948587422", amount, "Carta abc")

	// Identical up to the txid suffix, different after it.
	assert.Equal(t, a[:len(a)-16], b[:len(b)-16])
	assert.NotEqual(t, a, b)
}
