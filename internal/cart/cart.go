package cart

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// Quantity limits to prevent abuse.
const (
	MaxQuantityPerItem = 10
	MaxTotalItems      = 20
)

// ErrCartFull is returned when an add would push the total quantity over
// MaxTotalItems. The add is rejected, not trimmed.
var ErrCartFull = errors.New("cart limit reached: maximum items exceeded")

// Item is a line in the cart. UnitPrice is client-advisory and used only
// for display subtotals; checkout recomputes every price server-side.
type Item struct {
	ID             string  `json:"id"`
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName,omitempty"`
	ProductImage   string  `json:"productImage,omitempty"`
	SizeID         string  `json:"sizeId"`
	SizeDimensions string  `json:"sizeDimensions,omitempty"`
	MaterialID     string  `json:"materialId"`
	MaterialName   string  `json:"materialName,omitempty"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
}

// Cart is the aggregate of a single client's line items. Each client owns
// its cart exclusively, so the aggregate itself needs no locking.
type Cart struct {
	Items []Item `json:"items"`
}

// AddItem merges the item into the cart. Items merge on
// (productId, sizeId, materialId); merged and fresh quantities are capped
// at MaxQuantityPerItem. An add that would push the total quantity over
// MaxTotalItems is rejected with ErrCartFull.
func (c *Cart) AddItem(item Item) error {
	if c.ItemCount()+item.Quantity > MaxTotalItems {
		return ErrCartFull
	}

	for i, existing := range c.Items {
		if existing.ProductID == item.ProductID &&
			existing.SizeID == item.SizeID &&
			existing.MaterialID == item.MaterialID {
			q := existing.Quantity + item.Quantity
			if q > MaxQuantityPerItem {
				q = MaxQuantityPerItem
			}
			c.Items[i].Quantity = q
			return nil
		}
	}

	item.ID = uuid.NewString()
	if item.Quantity > MaxQuantityPerItem {
		item.Quantity = MaxQuantityPerItem
	}
	c.Items = append(c.Items, item)
	return nil
}

// RemoveItem deletes the line with the given id. Removing an absent id is
// a no-op.
func (c *Cart) RemoveItem(id string) {
	for i, item := range c.Items {
		if item.ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of a line. Zero or negative removes
// the line; anything above the per-item cap is clamped.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}
	if quantity > MaxQuantityPerItem {
		quantity = MaxQuantityPerItem
	}
	for i, item := range c.Items {
		if item.ID == id {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.Items = nil
}

// Subtotal sums advisory unit prices; display only.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// ItemCount sums quantities across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Marshal serializes the cart for the persisted mirror.
func (c *Cart) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal rehydrates a cart from its persisted mirror. Corrupt state is
// discarded in favor of an empty cart.
func Unmarshal(data []byte) Cart {
	var c Cart
	if len(data) == 0 {
		return Cart{}
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}
	}
	return c
}
