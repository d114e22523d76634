package payments

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	checkoutsession "github.com/stripe/stripe-go/v81/checkout/session"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/internal/pkg/env"
)

// CreateStripeCheckout opens a Stripe checkout session for the letter.
// Without a secret key it falls back to the internal simulate route.
func CreateStripeCheckout(ctx context.Context, letter *models.Letter, baseURL string) (LaunchResult, error) {
	_ = ctx
	secretKey := env.GetEnv("STRIPE_SECRET_KEY", "")
	if secretKey == "" {
		return LaunchResult{
			CheckoutURL: simulateURL(letter.ID, models.PaymentMethodStripe),
			ExternalID:  "sim-st-" + letter.ID,
			Simulated:   true,
		}, nil
	}

	stripe.Key = secretKey

	paymentURL := baseURL + "/pagamento/" + letter.ID
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("brl"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(checkoutProductName),
					},
					UnitAmount: stripe.Int64(letter.Price.Mul(decimal.NewFromInt(100)).IntPart()),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(paymentURL + "?paid=1"),
		CancelURL:  stripe.String(paymentURL + "?canceled=1"),
	}
	params.AddMetadata("letter_id", letter.ID)

	sess, err := checkoutsession.New(params)
	if err != nil {
		return LaunchResult{}, fmt.Errorf("stripe checkout session: %w", err)
	}

	return LaunchResult{
		CheckoutURL: sess.URL,
		ExternalID:  sess.ID,
	}, nil
}
