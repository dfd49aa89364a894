package request_models

type CreateCheckoutRequest struct {
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerName  string  `json:"customerName" binding:"required"`
	RetreatName   string  `json:"retreatName" binding:"required"`
	RetreatDate   string  `json:"retreatDate"`
	Amount        float64 `json:"amount"`
	PriceID       string  `json:"priceId"`
	PaymentType   string  `json:"paymentType"`
}
