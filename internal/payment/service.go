package payment

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/feliksshtein/wall-art-backend/internal/order"
)

// pendingTTL bounds how long create-time audit data waits for its
// capture. PayPal orders expire well within this window.
const pendingTTL = 3 * time.Hour

// pendingOrder holds the verified items and customer contact between
// order creation and capture.
type pendingOrder struct {
	customer CustomerInfo
	items    []VerifiedItem
	created  time.Time
}

// Service runs the payment order lifecycle over the selected gateway and
// appends a durable order record when a capture succeeds.
type Service struct {
	gateway Gateway
	orders  order.Repository

	mu      sync.Mutex
	pending map[string]pendingOrder
}

func NewService(gateway Gateway, orders order.Repository) *Service {
	return &Service{gateway: gateway, orders: orders, pending: make(map[string]pendingOrder)}
}

// CreateOrder reserves the verified amount with the provider and holds
// the audit payload until the matching capture.
func (s *Service) CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error) {
	ord, err := s.gateway.CreateOrder(ctx, params)
	if err != nil {
		return Order{}, err
	}

	s.mu.Lock()
	s.evictPending(time.Now())
	s.pending[ord.ID] = pendingOrder{
		customer: params.Customer,
		items:    params.Items,
		created:  time.Now(),
	}
	s.mu.Unlock()
	return ord, nil
}

// takePending removes and returns the audit payload for an order id.
// A capture without one (restart, expired entry) still records, just
// without the create-time details.
func (s *Service) takePending(orderID string) (pendingOrder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[orderID]
	if ok {
		delete(s.pending, orderID)
	}
	return p, ok
}

// evictPending drops entries whose order can no longer be captured.
// Caller holds the lock.
func (s *Service) evictPending(now time.Time) {
	for id, p := range s.pending {
		if now.Sub(p.created) > pendingTTL {
			delete(s.pending, id)
		}
	}
}

// Capture finalizes a created order. Demo-prefixed ids short-circuit to a
// synthesized success without contacting any provider, regardless of how
// the gateway is configured.
func (s *Service) Capture(ctx context.Context, orderID string) (CaptureResult, error) {
	if IsDemoOrderID(orderID) {
		result := CaptureResult{
			Status:        "COMPLETED",
			OrderNumber:   NewOrderNumber(),
			PayPalOrderID: orderID,
			Message:       "Demo order completed successfully",
		}
		s.record(orderID, result)
		return result, nil
	}

	result, err := s.gateway.CaptureOrder(ctx, orderID)
	if err != nil {
		return CaptureResult{}, err
	}
	result.OrderNumber = NewOrderNumber()
	s.record(orderID, result)
	return result, nil
}

// record appends the durable order record, keyed by the provider capture
// id (the order id stands in for demo captures). The create-time audit
// payload fills the customer and item fields. A failed write is logged
// but never fails a capture the customer already paid for.
func (s *Service) record(orderID string, result CaptureResult) {
	if s.orders == nil {
		return
	}

	captureID := result.CaptureID
	if captureID == "" {
		captureID = orderID
	}

	currency := result.Currency
	if currency == "" {
		currency = "USD"
	}

	items := []order.Item{}
	var customer CustomerInfo
	if p, ok := s.takePending(orderID); ok {
		customer = p.customer
		for _, item := range p.items {
			items = append(items, order.Item{
				ProductID: item.ProductID,
				Price:     item.Price,
				Quantity:  item.Quantity,
			})
		}
	}

	if _, err := s.orders.Create(order.Order{
		CaptureID:     captureID,
		PayPalOrderID: orderID,
		OrderNumber:   result.OrderNumber,
		Status:        result.Status,
		Amount:        result.Amount,
		Currency:      currency,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Items:         items,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Error().Err(err).Str("orderId", orderID).Msg("order record write failed")
	}
}
