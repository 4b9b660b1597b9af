package catalog

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/feliksshtein/wall-art-backend/internal/pricing"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	h := NewHandler(NewService(NewInMemoryRepository(Seed()), pricing.Default))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func TestListProducts(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/products", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(res.Body).Decode(&products); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %d", len(products))
	}
}

func TestGetProduct(t *testing.T) {
	app := setupApp(t)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	res, _ = app.Test(httptest.NewRequest("GET", "/api/v1/products/999", nil))
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res.StatusCode)
	}
}

func TestDisplayPrice(t *testing.T) {
	app := setupApp(t)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/1/price?sizeId=medium&materialId=metal", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Price    float64 `json:"price"`
		PriceUSD float64 `json:"priceUSD"`
		Currency string  `json:"currency"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	// 50 * 2.0 * 1.6
	if body.PriceUSD != 160 {
		t.Fatalf("expected 160 USD, got %v", body.PriceUSD)
	}
	if body.Price != 160 || body.Currency != "USD" {
		t.Fatalf("unexpected default-currency response: %+v", body)
	}
}

func TestDisplayPrice_CurrencyConversion(t *testing.T) {
	app := setupApp(t)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/1/price?sizeId=small&materialId=canvas&currency=ILS", nil))
	var body struct {
		Price    float64 `json:"price"`
		PriceUSD float64 `json:"priceUSD"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.PriceUSD != 50 {
		t.Fatalf("expected 50 USD, got %v", body.PriceUSD)
	}
	// 50 * 3.7
	if body.Price != 185 {
		t.Fatalf("expected 185 ILS, got %v", body.Price)
	}
}

func TestDisplayPrice_UnknownVariantFallsBack(t *testing.T) {
	app := setupApp(t)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/products/1/price?sizeId=xxl&materialId=gold", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		PriceUSD float64 `json:"priceUSD"`
	}
	json.NewDecoder(res.Body).Decode(&body)
	if body.PriceUSD != 50 {
		t.Fatalf("expected base price 50 for unknown variant, got %v", body.PriceUSD)
	}
}

func TestPricingOptions(t *testing.T) {
	app := setupApp(t)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/pricing", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body struct {
		Sizes     []pricing.Size     `json:"sizes"`
		Materials []pricing.Material `json:"materials"`
		Shipping  float64            `json:"shipping"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Sizes) != 3 || len(body.Materials) != 7 {
		t.Fatalf("expected 3 sizes and 7 materials, got %d/%d", len(body.Sizes), len(body.Materials))
	}
	if body.Shipping != pricing.ShippingCostUSD {
		t.Fatalf("expected shipping %v, got %v", pricing.ShippingCostUSD, body.Shipping)
	}
}

func TestUpdateProduct(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("PUT", "/api/admin/products/1", strings.NewReader(`{"basePrice":75,"name":"Sunset Redux"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var updated Product
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if updated.BasePrice != 75 || updated.Name != "Sunset Redux" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	// untouched fields survive partial updates
	if updated.NameRu != "Абстрактный закат" {
		t.Fatalf("expected NameRu preserved, got %q", updated.NameRu)
	}
}

func TestUpdateProduct_RejectsNonPositivePrice(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("PUT", "/api/admin/products/1", strings.NewReader(`{"basePrice":0}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	data, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(data), "basePrice") {
		t.Fatalf("unexpected body %s", data)
	}
}

func TestUpdateProduct_MalformedBodyGetsFixedMessage(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("PUT", "/api/admin/products/1", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	data, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(data), "Invalid request body") {
		t.Fatalf("expected the fixed message, got %s", data)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("PUT", "/api/admin/products/999", strings.NewReader(`{"basePrice":75}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}
