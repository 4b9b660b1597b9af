package checkout

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/feliksshtein/wall-art-backend/internal/catalog"
	"github.com/feliksshtein/wall-art-backend/internal/order"
	"github.com/feliksshtein/wall-art-backend/internal/payment"
	"github.com/feliksshtein/wall-art-backend/internal/pricing"
)

func makeApp(orders order.Repository) *fiber.App {
	app := fiber.New()
	products := catalog.NewInMemoryRepository(catalog.Seed())
	verifier := NewVerifier(catalog.NewService(products, pricing.Default), pricing.Default)
	payments := payment.NewService(payment.NewDemoGateway(), orders)
	NewHandler(verifier, payments).RegisterPublicRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	data, _ := io.ReadAll(res.Body)
	return res.StatusCode, data
}

func TestCreateOrder_ValidationBeforeAnythingElse(t *testing.T) {
	app := makeApp(nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"zero amount", `{"amount":0,"items":[{"productId":"1","sizeId":"small","materialId":"canvas","quantity":1}]}`, "Invalid amount"},
		{"huge amount", `{"amount":200000,"items":[{"productId":"1","sizeId":"small","materialId":"canvas","quantity":1}]}`, "maximum"},
		{"bad currency", `{"amount":60,"currency":"DOLLARS","items":[{"productId":"1","sizeId":"small","materialId":"canvas","quantity":1}]}`, "currency"},
		{"no items", `{"amount":60,"items":[]}`, "at least one item"},
		{"zero quantity", `{"amount":60,"items":[{"productId":"1","sizeId":"small","materialId":"canvas","quantity":0}]}`, "quantity"},
		{"eleven quantity", `{"amount":60,"items":[{"productId":"1","sizeId":"small","materialId":"canvas","quantity":11}]}`, "quantity"},
	}
	for _, tc := range cases {
		status, body := post(t, app, "/api/v1/paypal/create-order", tc.body)
		if status != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d (%s)", tc.name, status, body)
		}
		if !strings.Contains(string(body), tc.want) {
			t.Fatalf("%s: expected %q in %s", tc.name, tc.want, body)
		}
	}
}

func TestCreateOrder_PriceMismatchExposesVerifiedTotal(t *testing.T) {
	app := makeApp(nil)

	status, body := post(t, app, "/api/v1/paypal/create-order",
		`{"amount":160.05,"items":[{"productId":"1","sizeId":"medium","materialId":"metal","quantity":1}]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%s)", status, body)
	}

	var resp struct {
		Error         string  `json:"error"`
		VerifiedTotal float64 `json:"verifiedTotal"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Error != "Price verification failed" || resp.VerifiedTotal != 170 {
		t.Fatalf("unexpected rejection %+v", resp)
	}
}

func TestCreateOrder_UnknownProductRejected(t *testing.T) {
	app := makeApp(nil)

	status, body := post(t, app, "/api/v1/paypal/create-order",
		`{"amount":60,"items":[{"productId":"999","sizeId":"small","materialId":"canvas","quantity":1}]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if !strings.Contains(string(body), "Invalid product ID: 999") {
		t.Fatalf("expected product error in %s", body)
	}
}

func TestCreateOrder_WithinToleranceCreatesDemoOrder(t *testing.T) {
	app := makeApp(nil)

	status, body := post(t, app, "/api/v1/paypal/create-order",
		`{"amount":170.01,"items":[{"productId":"1","sizeId":"medium","materialId":"metal","quantity":1}]}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, body)
	}

	var resp struct {
		ID            string  `json:"id"`
		Status        string  `json:"status"`
		VerifiedTotal float64 `json:"verifiedTotal"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.HasPrefix(resp.ID, payment.DemoOrderPrefix) {
		t.Fatalf("expected demo order id, got %q", resp.ID)
	}
	if resp.Status != "DEMO_MODE" {
		t.Fatalf("expected DEMO_MODE status, got %q", resp.Status)
	}
	if resp.VerifiedTotal != 170 {
		t.Fatalf("expected verifiedTotal 170, got %v", resp.VerifiedTotal)
	}
}

func TestCaptureOrder_DemoPrefixShortCircuits(t *testing.T) {
	orders := order.NewInMemoryRepository()
	app := makeApp(orders)

	status, body := post(t, app, "/api/v1/paypal/capture-order", `{"orderId":"DEMO-ABC123"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, body)
	}

	var resp payment.CaptureResult
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != "COMPLETED" {
		t.Fatalf("expected COMPLETED, got %q", resp.Status)
	}
	if !strings.HasPrefix(resp.OrderNumber, "FS-") {
		t.Fatalf("expected FS- order number, got %q", resp.OrderNumber)
	}

	// the capture appended exactly one durable record
	recorded, err := orders.List()
	if err != nil || len(recorded) != 1 {
		t.Fatalf("expected one order record, got %d (%v)", len(recorded), err)
	}
	if recorded[0].PayPalOrderID != "DEMO-ABC123" {
		t.Fatalf("unexpected record %+v", recorded[0])
	}
}

func TestCaptureOrder_MissingIDRejected(t *testing.T) {
	app := makeApp(nil)
	status, body := post(t, app, "/api/v1/paypal/capture-order", `{}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if !strings.Contains(string(body), "Order ID required") {
		t.Fatalf("unexpected body %s", body)
	}
}
