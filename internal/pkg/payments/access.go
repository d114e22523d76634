package payments

import "github.com/cartasdeamor/cartas/app/models"

// Access is the second axis of a letter's state: what the current visitor
// may see. Modeling it as an enum keeps the payment axis (is_paid) and the
// access axis from being conflated in guard code.
type Access int

const (
	// AccessAwaitingPayment means the letter is unpaid; the visitor is sent
	// to the payment flow instead of any access evaluation.
	AccessAwaitingPayment Access = iota
	// AccessLocked means the letter is paid and password protected, and the
	// session holds no unlock grant for it.
	AccessLocked
	// AccessOpen means the public page may be served.
	AccessOpen
)

func (a Access) String() string {
	switch a {
	case AccessAwaitingPayment:
		return "awaiting_payment"
	case AccessLocked:
		return "locked"
	default:
		return "open"
	}
}

// EvaluateAccess resolves the visitor's access to a letter. hasGrant is the
// session-scoped unlock grant for this exact letter id.
func EvaluateAccess(letter *models.Letter, hasGrant bool) Access {
	if !letter.IsPaid {
		return AccessAwaitingPayment
	}
	if letter.HasPassword() && !hasGrant {
		return AccessLocked
	}
	return AccessOpen
}
