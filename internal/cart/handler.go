package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const cookieName = "cart_id"

// Handler exposes the cart over HTTP. The cart key travels in a cookie so
// each client keeps its own cart; no authentication is involved.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items/:id", h.updateItem)
	app.Delete("/api/v1/cart/items/:id", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

// cartKey returns the client's cart key, minting one when absent.
func (h *Handler) cartKey(c *fiber.Ctx) string {
	if key := c.Cookies(cookieName); key != "" {
		return key
	}
	key := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return key
}

func cartResponse(c Cart) fiber.Map {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return fiber.Map{
		"items":     items,
		"subtotal":  c.Subtotal(),
		"itemCount": c.ItemCount(),
	}
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	crt, err := h.service.Get(c.Context(), h.cartKey(c))
	if err != nil {
		log.Error().Err(err).Msg("cart load failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load cart"})
	}
	return c.JSON(cartResponse(crt))
}

type addItemRequest struct {
	ProductID      string  `json:"productId"`
	ProductName    string  `json:"productName"`
	ProductImage   string  `json:"productImage"`
	SizeID         string  `json:"sizeId"`
	SizeDimensions string  `json:"sizeDimensions"`
	MaterialID     string  `json:"materialId"`
	MaterialName   string  `json:"materialName"`
	Quantity       int     `json:"quantity"`
	UnitPrice      float64 `json:"unitPrice"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if payload.ProductID == "" || payload.SizeID == "" || payload.MaterialID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "productId, sizeId and materialId are required"})
	}
	if payload.Quantity <= 0 {
		payload.Quantity = 1
	}

	crt, err := h.service.AddItem(c.Context(), h.cartKey(c), Item{
		ProductID:      payload.ProductID,
		ProductName:    payload.ProductName,
		ProductImage:   payload.ProductImage,
		SizeID:         payload.SizeID,
		SizeDimensions: payload.SizeDimensions,
		MaterialID:     payload.MaterialID,
		MaterialName:   payload.MaterialName,
		Quantity:       payload.Quantity,
		UnitPrice:      payload.UnitPrice,
	})
	if err != nil {
		if err == ErrCartFull {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		log.Error().Err(err).Msg("cart add failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update cart"})
	}
	return c.JSON(cartResponse(crt))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	crt, err := h.service.UpdateQuantity(c.Context(), h.cartKey(c), c.Params("id"), payload.Quantity)
	if err != nil {
		log.Error().Err(err).Msg("cart update failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update cart"})
	}
	return c.JSON(cartResponse(crt))
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	crt, err := h.service.RemoveItem(c.Context(), h.cartKey(c), c.Params("id"))
	if err != nil {
		log.Error().Err(err).Msg("cart remove failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update cart"})
	}
	return c.JSON(cartResponse(crt))
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context(), h.cartKey(c)); err != nil {
		log.Error().Err(err).Msg("cart clear failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to clear cart"})
	}
	return c.JSON(cartResponse(Cart{}))
}
