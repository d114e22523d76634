package payments

import (
	"context"
	"fmt"

	"github.com/cartasdeamor/cartas/app/models"
)

const checkoutProductName = "Carta de Amor Digital"

// LaunchCheckout starts a checkout with the external gateway behind the
// given method. baseURL is the externally visible origin used to build
// redirect and webhook return URLs.
func LaunchCheckout(ctx context.Context, letter *models.Letter, method, baseURL string) (LaunchResult, error) {
	switch method {
	case models.PaymentMethodMercadoPago:
		return CreateMercadoPagoCheckout(ctx, letter, baseURL)
	case models.PaymentMethodStripe:
		return CreateStripeCheckout(ctx, letter, baseURL)
	default:
		return LaunchResult{}, fmt.Errorf("method %s has no checkout gateway", method)
	}
}

func simulateURL(letterID, method string) string {
	return fmt.Sprintf("/pagamento/%s/simular/%s", letterID, method)
}
