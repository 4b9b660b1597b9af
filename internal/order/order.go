package order

// Item is the per-line snapshot of verified price and quantity captured
// at payment time.
type Item struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is the durable record appended when a payment capture succeeds.
// It is keyed by the provider capture id; the customer-facing order
// number is a reference, not a key.
type Order struct {
	CaptureID     string  `json:"captureId"`
	PayPalOrderID string  `json:"paypalOrderId"`
	OrderNumber   string  `json:"orderNumber"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	Items         []Item  `json:"items"`
	CreatedAt     string  `json:"createdAt"`
}
