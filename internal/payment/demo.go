package payment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DemoGateway simulates the payment lifecycle offline. It is selected at
// startup only when provider credentials are absent outside production.
type DemoGateway struct{}

func NewDemoGateway() *DemoGateway {
	log.Warn().Msg("PayPal not configured - using demo mode")
	return &DemoGateway{}
}

func (g *DemoGateway) CreateOrder(_ context.Context, _ CreateOrderParams) (Order, error) {
	id := DemoOrderPrefix + strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return Order{
		ID:      id,
		Status:  "DEMO_MODE",
		Message: "PayPal credentials not configured. This is a demo order.",
	}, nil
}

func (g *DemoGateway) CaptureOrder(_ context.Context, orderID string) (CaptureResult, error) {
	return CaptureResult{
		Status:        "COMPLETED",
		OrderNumber:   NewOrderNumber(),
		PayPalOrderID: orderID,
		Message:       "Demo order completed successfully",
	}, nil
}
