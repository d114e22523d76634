package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cartasdeamor/cartas/app/models"
)

func TestEvaluateAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paid     bool
		hash     string
		hasGrant bool
		want     Access
	}{
		{"unpaid letter goes to payment", false, "", false, AccessAwaitingPayment},
		{"unpaid letter with password still goes to payment", false, "$2a$10$hash", true, AccessAwaitingPayment},
		{"paid letter without password is open", true, "", false, AccessOpen},
		{"paid protected letter without grant is locked", true, "$2a$10$hash", false, AccessLocked},
		{"paid protected letter with grant is open", true, "$2a$10$hash", true, AccessOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letter := &models.Letter{IsPaid: tt.paid, PasswordHash: tt.hash}
			assert.Equal(t, tt.want, EvaluateAccess(letter, tt.hasGrant))
		})
	}
}

func TestAccessString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "awaiting_payment", AccessAwaitingPayment.String())
	assert.Equal(t, "locked", AccessLocked.String())
	assert.Equal(t, "open", AccessOpen.String())
}
