package catalog

import (
	"github.com/gofiber/fiber/v2"

	"github.com/feliksshtein/wall-art-backend/internal/pricing"
)

// Handler exposes catalog routes. Price responses here are display-only;
// checkout recomputes everything server-side.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.list)
	app.Get("/api/v1/products/:id", h.get)
	app.Get("/api/v1/products/:id/price", h.price)
	app.Get("/api/v1/pricing", h.pricingOptions)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/admin/products/:id", h.update)
}

func (h *Handler) list(c *fiber.Ctx) error {
	return c.JSON(h.service.List())
}

func (h *Handler) get(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	return c.JSON(p)
}

// price returns the display price for a size/material variant, optionally
// converted into a display currency.
func (h *Handler) price(c *fiber.Ctx) error {
	priceUSD, err := h.service.DisplayPrice(c.Params("id"), c.Query("sizeId"), c.Query("materialId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	currency := c.Query("currency", "USD")
	return c.JSON(fiber.Map{
		"price":     pricing.Convert(priceUSD, currency),
		"priceUSD":  priceUSD,
		"currency":  currency,
		"formatted": pricing.Format(priceUSD, currency),
	})
}

// pricingOptions serves the size and material options so clients render
// the same table the server prices from.
func (h *Handler) pricingOptions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sizes":     h.service.table.Sizes,
		"materials": h.service.table.Materials,
		"shipping":  pricing.ShippingCostUSD,
	})
}

type updateRequest struct {
	Name      *string  `json:"name"`
	NameHe    *string  `json:"nameHe"`
	NameRu    *string  `json:"nameRu"`
	BasePrice *float64 `json:"basePrice"`
	ImageURL  *string  `json:"imageUrl"`
}

func (h *Handler) update(c *fiber.Ctx) error {
	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	existing, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	if payload.Name != nil {
		existing.Name = *payload.Name
	}
	if payload.NameHe != nil {
		existing.NameHe = *payload.NameHe
	}
	if payload.NameRu != nil {
		existing.NameRu = *payload.NameRu
	}
	if payload.BasePrice != nil {
		if *payload.BasePrice <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "basePrice must be positive"})
		}
		existing.BasePrice = *payload.BasePrice
	}
	if payload.ImageURL != nil {
		existing.ImageURL = *payload.ImageURL
	}

	updated, err := h.service.Update(existing.ID, existing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(updated)
}
