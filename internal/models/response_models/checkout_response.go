package response_models

type CreateCheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutSessionResponse keeps the provider's snake_case field names, which
// the confirmation page reads directly.
type CheckoutSessionResponse struct {
	ID            string `json:"id"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
}
