package payment

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrCreateFailed and ErrCaptureFailed are the only provider errors
	// surfaced to callers; the raw provider response stays in the logs.
	ErrCreateFailed  = errors.New("failed to create PayPal order")
	ErrCaptureFailed = errors.New("failed to capture PayPal order")
)

// VerifiedItem is a line with its authoritative server-computed price,
// carried to the provider as audit metadata.
type VerifiedItem struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CustomerInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CreateOrderParams carries the verified total; the client amount never
// reaches this layer.
type CreateOrderParams struct {
	Amount   float64
	Currency string
	Items    []VerifiedItem
	Customer CustomerInfo
}

// Order is the provider-side order representation relevant here.
type Order struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// CaptureResult is the outcome of finalizing a payment. Amount and
// Currency come from the provider's capture response and feed the order
// record; they are not part of the HTTP response contract.
type CaptureResult struct {
	Status        string  `json:"status"`
	OrderNumber   string  `json:"orderNumber"`
	PayPalOrderID string  `json:"paypalOrderId,omitempty"`
	CaptureID     string  `json:"captureId,omitempty"`
	Message       string  `json:"message,omitempty"`
	Amount        float64 `json:"-"`
	Currency      string  `json:"-"`
}

// Gateway is the payment-provider capability. The real PayPal client and
// the local simulator both implement it; the choice is made once at
// startup, never per request.
type Gateway interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error)
	CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error)
}

// DemoOrderPrefix marks locally synthesized order ids. Provider ids never
// start with it, which makes the prefix check a real boundary.
const DemoOrderPrefix = "DEMO-"

// IsDemoOrderID reports whether an order id was synthesized locally.
func IsDemoOrderID(orderID string) bool {
	return strings.HasPrefix(orderID, DemoOrderPrefix)
}

// NewOrderNumber generates the customer-facing order reference. It is a
// timestamp in base 36 and is not required to be globally unique.
func NewOrderNumber() string {
	return "FS-" + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}
