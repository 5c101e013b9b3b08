package payment

type InitPaymentRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type InitPaymentResponse struct {
	InvID      int64  `json:"inv_id"`
	Amount     string `json:"amount"`
	PaymentURL string `json:"payment_url"`
	Status     string `json:"status"`
}
