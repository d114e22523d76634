package payments

// LaunchResult is the outcome of starting a gateway checkout. When no real
// credentials are configured the adapter falls back to an internal
// "simulate" route and flags the launch accordingly.
type LaunchResult struct {
	CheckoutURL string
	ExternalID  string
	Simulated   bool
}
