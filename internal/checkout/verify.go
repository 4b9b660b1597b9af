package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/feliksshtein/wall-art-backend/internal/cart"
	"github.com/feliksshtein/wall-art-backend/internal/pricing"
)

// AmountTolerance is the allowed absolute difference between the client's
// amount and the server-computed total, in currency units.
var AmountTolerance = decimal.NewFromFloat(0.02)

// ErrPriceMismatch marks a client amount outside tolerance. The rejection
// carries the authoritative total so the client can resynchronize; the
// client amount itself is never used downstream.
var ErrPriceMismatch = errors.New("price verification failed")

// OrderItem is a checkout line as submitted by the client. Any
// client-side price is ignored outright.
type OrderItem struct {
	ProductID  string `json:"productId"`
	SizeID     string `json:"sizeId"`
	MaterialID string `json:"materialId"`
	Quantity   int    `json:"quantity"`
}

// ItemCalculation records the authoritative price of one line.
type ItemCalculation struct {
	ProductID       string  `json:"productId"`
	CalculatedPrice float64 `json:"calculatedPrice"`
	Quantity        int     `json:"quantity"`
}

// Calculation is the server-side recomputation of an order.
type Calculation struct {
	Subtotal float64           `json:"subtotal"`
	Shipping float64           `json:"shipping"`
	Total    float64           `json:"total"`
	Items    []ItemCalculation `json:"items"`
	Errors   []string          `json:"errors,omitempty"`
}

// BasePriceResolver resolves the trusted base price of a product.
type BasePriceResolver interface {
	BasePrice(productID string) (float64, error)
}

// Verifier recomputes order totals on the trusted side.
type Verifier struct {
	prices BasePriceResolver
	table  pricing.Table
}

func NewVerifier(prices BasePriceResolver, table pricing.Table) *Verifier {
	return &Verifier{prices: prices, table: table}
}

// Calculate recomputes the subtotal and total for the submitted items,
// collecting an error per invalid line instead of stopping at the first.
// The one early exit is the running quantity cap: once it is exceeded the
// rest of the items are not processed.
func (v *Verifier) Calculate(items []OrderItem) Calculation {
	calc := Calculation{
		Shipping: pricing.ShippingCostUSD,
		Items:    make([]ItemCalculation, 0, len(items)),
	}

	totalQuantity := 0
	for _, item := range items {
		totalQuantity += item.Quantity
		if totalQuantity > cart.MaxTotalItems {
			calc.Errors = append(calc.Errors, fmt.Sprintf("Cart exceeds maximum of %d items", cart.MaxTotalItems))
			break
		}

		basePrice, err := v.prices.BasePrice(item.ProductID)
		if err != nil {
			calc.Errors = append(calc.Errors, fmt.Sprintf("Invalid product ID: %s", item.ProductID))
			continue
		}

		size, ok := v.table.SizeByID(item.SizeID)
		if !ok {
			calc.Errors = append(calc.Errors, fmt.Sprintf("Invalid size ID: %s", item.SizeID))
			continue
		}
		material, ok := v.table.MaterialByID(item.MaterialID)
		if !ok {
			calc.Errors = append(calc.Errors, fmt.Sprintf("Invalid material ID: %s", item.MaterialID))
			continue
		}

		// same derivation as the display path, but ids are already strict
		unitPrice := v.table.CalculatePrice(size.ID, material.ID, basePrice)
		calc.Subtotal += unitPrice * float64(item.Quantity)
		calc.Items = append(calc.Items, ItemCalculation{
			ProductID:       item.ProductID,
			CalculatedPrice: unitPrice,
			Quantity:        item.Quantity,
		})
	}

	calc.Total = calc.Subtotal + calc.Shipping
	return calc
}

// Verify recomputes the order and compares the client amount against the
// authoritative total. On any line error or a difference beyond
// AmountTolerance, the calculation is returned with a non-nil error and
// no provider call may be made.
func (v *Verifier) Verify(items []OrderItem, clientAmount float64) (Calculation, error) {
	calc := v.Calculate(items)
	if len(calc.Errors) > 0 {
		return calc, errors.New("order validation failed")
	}

	diff := decimal.NewFromFloat(clientAmount).Sub(decimal.NewFromFloat(calc.Total)).Abs()
	if diff.GreaterThan(AmountTolerance) {
		return calc, ErrPriceMismatch
	}
	return calc, nil
}
