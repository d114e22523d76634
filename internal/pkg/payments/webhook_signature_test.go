package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mpSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyMercadoPagoSignatureValid(t *testing.T) {
	t.Parallel()

	body := []byte(`{"external_reference":"abc"}`)
	secret := "super-secret"

	assert.True(t, VerifyMercadoPagoSignature(body, mpSignature(body, secret), secret))
}

func TestVerifyMercadoPagoSignatureUppercaseHex(t *testing.T) {
	t.Parallel()

	body := []byte(`{"external_reference":"abc"}`)
	secret := "super-secret"
	sig := strings.ToUpper(mpSignature(body, secret))

	assert.True(t, VerifyMercadoPagoSignature(body, sig, secret))
}

func TestVerifyMercadoPagoSignatureInvalid(t *testing.T) {
	t.Parallel()

	body := []byte(`{"external_reference":"abc"}`)
	secret := "super-secret"

	assert.False(t, VerifyMercadoPagoSignature(body, mpSignature(body, "wrong-secret"), secret))
	assert.False(t, VerifyMercadoPagoSignature([]byte("tampered"), mpSignature(body, secret), secret))
}

func TestVerifyMercadoPagoSignatureMissingParts(t *testing.T) {
	t.Parallel()

	body := []byte(`{}`)

	assert.False(t, VerifyMercadoPagoSignature(body, "", "secret"))
	assert.False(t, VerifyMercadoPagoSignature(body, mpSignature(body, "secret"), ""))
	assert.False(t, VerifyMercadoPagoSignature(body, "not-hex!!", "secret"))
}
