package order

import "github.com/gofiber/fiber/v2"

// Handler exposes order records to the admin back office.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/admin/orders", h.list)
}

func (h *Handler) list(c *fiber.Ctx) error {
	orders, err := h.repo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}
	return c.JSON(orders)
}
