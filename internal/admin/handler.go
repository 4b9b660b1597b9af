package admin

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/feliksshtein/wall-art-backend/internal/ratelimit"
)

// CookieName carries the signed admin token.
const CookieName = "admin_token"

// Handler implements the admin login/logout surface.
type Handler struct {
	service    *Service
	limiter    ratelimit.Limiter
	production bool
}

func NewHandler(service *Service, limiter ratelimit.Limiter, production bool) *Handler {
	return &Handler{service: service, limiter: limiter, production: production}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/admin/login", h.login)
	app.Post("/api/admin/logout", h.logout)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() string {
	if r.Email == "" || len(r.Email) > 255 || !strings.Contains(r.Email, "@") {
		return "Invalid email format"
	}
	if r.Password == "" || len(r.Password) > 128 {
		return "Password required"
	}
	return ""
}

func (h *Handler) login(c *fiber.Ctx) error {
	// the rate limiter runs before anything touches credential storage
	allowed, err := h.limiter.Allow(c.Context(), c.IP())
	if err != nil {
		log.Error().Err(err).Msg("rate limiter unavailable")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
	if !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "Too many login attempts. Please try again later.",
		})
	}

	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if msg := payload.validate(); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": msg})
	}

	adm, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	signed, err := h.service.IssueToken(adm)
	if err != nil {
		log.Error().Err(err).Msg("token signing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(TokenTTL / time.Second),
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{"success": true, "message": "Logged in successfully"})
}

// logout clears the cookie; the token itself stays valid until expiry.
func (h *Handler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.production,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(fiber.Map{"success": true})
}
