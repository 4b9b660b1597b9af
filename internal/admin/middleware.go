package admin

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// protectedPagePrefixes are the admin back-office pages; unauthenticated
// requests redirect to the login page with the original path preserved.
var protectedPagePrefixes = []string{
	"/admin/dashboard",
	"/admin/products",
	"/admin/orders",
	"/admin/pricing",
}

// apiPrefix guards the admin API; unauthenticated requests get 401
// instead of a redirect.
const apiPrefix = "/api/admin/"

// publicAdminAPI lists admin API paths reachable without a token.
var publicAdminAPI = map[string]bool{
	"/api/admin/login":  true,
	"/api/admin/logout": true,
}

// Gatekeeper verifies the admin cookie on every protected request.
func Gatekeeper(service *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		isAPI := strings.HasPrefix(path, apiPrefix) && !publicAdminAPI[path]
		isPage := false
		for _, prefix := range protectedPagePrefixes {
			if strings.HasPrefix(path, prefix) {
				isPage = true
				break
			}
		}
		if !isAPI && !isPage {
			return c.Next()
		}

		claims, err := service.VerifyToken(c.Cookies(CookieName))
		if err != nil {
			if isAPI {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
			}
			return c.Redirect("/admin?redirect=" + url.QueryEscape(path))
		}

		c.Locals("admin", claims)
		return c.Next()
	}
}
