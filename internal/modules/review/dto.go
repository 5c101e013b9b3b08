package review

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type ServiceRatingResponse struct {
	ServiceID int64   `json:"service_id"`
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
}
