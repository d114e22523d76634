package payments

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/cartasdeamor/cartas/app/models"
	"github.com/cartasdeamor/cartas/internal/pkg/env"
)

// CreateMercadoPagoCheckout creates a Mercado Pago preference and returns
// its init point. Without an access token it falls back to the internal
// simulate route.
func CreateMercadoPagoCheckout(ctx context.Context, letter *models.Letter, baseURL string) (LaunchResult, error) {
	accessToken := env.GetEnv("MERCADO_PAGO_ACCESS_TOKEN", "")
	if accessToken == "" {
		return LaunchResult{
			CheckoutURL: simulateURL(letter.ID, models.PaymentMethodMercadoPago),
			ExternalID:  "sim-mp-" + letter.ID,
			Simulated:   true,
		}, nil
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return LaunchResult{}, fmt.Errorf("mercado pago config: %w", err)
	}

	successURL := env.GetEnv("MERCADO_PAGO_SUCCESS_URL", baseURL+"/pagamento/"+letter.ID)
	request := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      checkoutProductName,
				Quantity:   1,
				CurrencyID: "BRL",
				UnitPrice:  letter.Price.InexactFloat64(),
			},
		},
		ExternalReference: letter.ID,
		BackURLs: &preference.BackURLsRequest{
			Success: successURL,
			Failure: successURL,
		},
		AutoReturn: "approved",
	}

	client := preference.NewClient(cfg)
	resource, err := client.Create(ctx, request)
	if err != nil {
		return LaunchResult{}, fmt.Errorf("mercado pago preference: %w", err)
	}

	return LaunchResult{
		CheckoutURL: resource.InitPoint,
		ExternalID:  resource.ID,
	}, nil
}
