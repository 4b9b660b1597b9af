package checkout

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/feliksshtein/wall-art-backend/internal/cart"
	"github.com/feliksshtein/wall-art-backend/internal/payment"
)

// MaxOrderAmount bounds the accepted client amount.
const MaxOrderAmount = 100000

// Handler exposes the checkout flow: create a provider order for a
// verified amount, then capture it after external approval.
type Handler struct {
	verifier *Verifier
	payments *payment.Service
}

func NewHandler(verifier *Verifier, payments *payment.Service) *Handler {
	return &Handler{verifier: verifier, payments: payments}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/paypal/create-order", h.createOrder)
	app.Post("/api/v1/paypal/capture-order", h.captureOrder)
}

type customerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type createOrderRequest struct {
	Amount       float64      `json:"amount"`
	Currency     string       `json:"currency"`
	Items        []OrderItem  `json:"items"`
	CustomerInfo customerInfo `json:"customerInfo"`
}

// validate checks request shape before anything touches the verifier or
// the provider.
func (r *createOrderRequest) validate() string {
	if r.Amount <= 0 {
		return "Invalid amount"
	}
	if r.Amount > MaxOrderAmount {
		return fmt.Sprintf("Amount exceeds maximum of %d", MaxOrderAmount)
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if len(r.Currency) != 3 {
		return "Invalid currency code"
	}
	if len(r.Items) == 0 {
		return "Order must contain at least one item"
	}
	if len(r.Items) > cart.MaxTotalItems {
		return fmt.Sprintf("Order exceeds maximum of %d items", cart.MaxTotalItems)
	}
	for _, item := range r.Items {
		if item.ProductID == "" || item.SizeID == "" || item.MaterialID == "" {
			return "Each item needs productId, sizeId and materialId"
		}
		if item.Quantity < 1 || item.Quantity > cart.MaxQuantityPerItem {
			return fmt.Sprintf("Item quantity must be between 1 and %d", cart.MaxQuantityPerItem)
		}
	}
	return ""
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if msg := payload.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	calc, err := h.verifier.Verify(payload.Items, payload.Amount)
	if err != nil {
		if err == ErrPriceMismatch {
			log.Warn().Float64("clientAmount", payload.Amount).Float64("serverTotal", calc.Total).Msg("price verification failed")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":         "Price verification failed",
				"verifiedTotal": calc.Total,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Order validation failed",
			"details": calc.Errors,
		})
	}

	items := make([]payment.VerifiedItem, 0, len(calc.Items))
	for _, item := range calc.Items {
		items = append(items, payment.VerifiedItem{
			ProductID: item.ProductID,
			Price:     item.CalculatedPrice,
			Quantity:  item.Quantity,
		})
	}

	// the authoritative total is what gets reserved, never the client's
	ord, err := h.payments.CreateOrder(c.Context(), payment.CreateOrderParams{
		Amount:   calc.Total,
		Currency: payload.Currency,
		Items:    items,
		Customer: payment.CustomerInfo{
			Name:  payload.CustomerInfo.Name,
			Email: payload.CustomerInfo.Email,
		},
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":            ord.ID,
		"status":        ord.Status,
		"message":       ord.Message,
		"verifiedTotal": calc.Total,
	})
}

type captureOrderRequest struct {
	OrderID string `json:"orderId"`
}

func (h *Handler) captureOrder(c *fiber.Ctx) error {
	payload := new(captureOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order ID required"})
	}

	result, err := h.payments.Capture(c.Context(), payload.OrderID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(result)
}
