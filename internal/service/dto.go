package service

// BookingRequest is a booking submission from the portal booking form.
type BookingRequest struct {
	Sender struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
		Email string `json:"email"`
	} `json:"sender" binding:"required"`
	Recipient struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone" binding:"required"`
	} `json:"recipient" binding:"required"`
	Collection struct {
		Street   string `json:"street" binding:"required"`
		City     string `json:"city" binding:"required"`
		Postcode string `json:"postcode"`
	} `json:"collection" binding:"required"`
	Delivery struct {
		Street string `json:"street" binding:"required"`
		Suburb string `json:"suburb"`
		City   string `json:"city" binding:"required"`
	} `json:"delivery" binding:"required"`
	Contents      string  `json:"contents"`
	WeightKG      float64 `json:"weight_kg"`
	DeclaredValue float64 `json:"declared_value"`
	PriceGBP      float64 `json:"price_gbp"`
}

// TicketRequest is a support ticket submission.
type TicketRequest struct {
	ShipmentID string `json:"shipment_id"`
	Subject    string `json:"subject" binding:"required"`
	Body       string `json:"body" binding:"required"`
	Category   string `json:"category"`
	OpenedBy   string `json:"opened_by" binding:"required"`
}
