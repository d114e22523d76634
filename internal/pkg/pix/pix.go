// Package pix assembles the static PIX "Copia e Cola" payload encoded into
// the payment page QR code. The grammar is positional: field tags and
// lengths are fixed, so the output must match the national static-payload
// format byte for byte to stay scannable by banking apps.
package pix

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const txIDLength = 16

// BuildPayload builds a static PIX payload for the given merchant key,
// amount and description. The transaction id suffix is random, so two
// calls with the same inputs differ only in that suffix.
func BuildPayload(key string, amount decimal.Decimal, description string) string {
	txid := uuid.New().String()[:txIDLength]
	return buildPayloadWithTxID(key, amount, description, txid)
}

func buildPayloadWithTxID(key string, amount decimal.Decimal, description, txid string) string {
	rounded := amount.StringFixed(2)

	// QueryEscape matches the escaping the banking apps expect for the
	// short description slot (spaces become '+').
	desc := url.QueryEscape(description)
	if len(desc) > 4 {
		desc = desc[:4]
	}

	return fmt.Sprintf(
		"00020126580014BR.GOV.BCB.PIX0136%s"+
			"520400005303986540%d%s"+
			"5802BR5920CARTAS DE AMOR6009SAO PAULO62070503***"+
			"6304%s%s",
		key,
		len(rounded), rounded,
		desc, txid,
	)
}
