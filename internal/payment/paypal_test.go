package payment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func paypalTestServer(t *testing.T, createStatus, captureStatus int) (*httptest.Server, *[]byte) {
	t.Helper()
	var lastCreateBody []byte

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		lastCreateBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(createStatus)
		json.NewEncoder(w).Encode(map[string]string{"id": "PP-123", "status": "CREATED"})
	})
	mux.HandleFunc("/v2/checkout/orders/PP-123/capture", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(captureStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"status": "COMPLETED",
			"purchase_units": []map[string]any{{
				"payments": map[string]any{
					"captures": []map[string]any{{
						"id": "CAP-123",
						"amount": map[string]string{
							"currency_code": "USD",
							"value":         "170.00",
						},
					}},
				},
			}},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &lastCreateBody
}

func testGateway(serverURL string) *PayPalGateway {
	return NewPayPalGateway(PayPalConfig{
		BaseURL:      serverURL,
		ClientID:     "client",
		ClientSecret: "secret",
		AppURL:       "http://localhost:3000",
	})
}

func TestPayPalCreateOrder(t *testing.T) {
	server, createBody := paypalTestServer(t, http.StatusCreated, http.StatusCreated)
	gw := testGateway(server.URL)

	ord, err := gw.CreateOrder(context.Background(), CreateOrderParams{
		Amount:   170,
		Currency: "USD",
		Items:    []VerifiedItem{{ProductID: "1", Price: 160, Quantity: 1}},
		Customer: CustomerInfo{Name: "Jane Doe", Email: "jane@example.com"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ord.ID != "PP-123" || ord.Status != "CREATED" {
		t.Fatalf("unexpected order %+v", ord)
	}

	// the amount breakdown carries the verified total split into items
	// plus flat shipping, formatted with two decimals
	var payload struct {
		PurchaseUnits []struct {
			Amount struct {
				Value     string `json:"value"`
				Breakdown struct {
					ItemTotal struct {
						Value string `json:"value"`
					} `json:"item_total"`
					Shipping struct {
						Value string `json:"value"`
					} `json:"shipping"`
				} `json:"breakdown"`
			} `json:"amount"`
			CustomID string `json:"custom_id"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(*createBody, &payload); err != nil {
		t.Fatalf("invalid create payload: %v", err)
	}
	unit := payload.PurchaseUnits[0]
	if unit.Amount.Value != "170.00" {
		t.Fatalf("expected amount 170.00, got %s", unit.Amount.Value)
	}
	if unit.Amount.Breakdown.ItemTotal.Value != "160.00" {
		t.Fatalf("expected item total 160.00, got %s", unit.Amount.Breakdown.ItemTotal.Value)
	}
	if unit.Amount.Breakdown.Shipping.Value != "10.00" {
		t.Fatalf("expected shipping 10.00, got %s", unit.Amount.Breakdown.Shipping.Value)
	}

	var audit struct {
		CustomerEmail string         `json:"customerEmail"`
		Items         []VerifiedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(unit.CustomID), &audit); err != nil {
		t.Fatalf("custom_id is not valid JSON: %v", err)
	}
	if audit.CustomerEmail != "jane@example.com" || len(audit.Items) != 1 {
		t.Fatalf("unexpected audit payload %+v", audit)
	}
}

func TestPayPalCreateOrder_ProviderErrorIsGeneric(t *testing.T) {
	server, _ := paypalTestServer(t, http.StatusUnprocessableEntity, http.StatusCreated)
	gw := testGateway(server.URL)

	_, err := gw.CreateOrder(context.Background(), CreateOrderParams{Amount: 170, Currency: "USD"})
	if err != ErrCreateFailed {
		t.Fatalf("expected ErrCreateFailed, got %v", err)
	}
}

func TestPayPalCaptureOrder(t *testing.T) {
	server, _ := paypalTestServer(t, http.StatusCreated, http.StatusCreated)
	gw := testGateway(server.URL)

	result, err := gw.CaptureOrder(context.Background(), "PP-123")
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if result.Status != "COMPLETED" || result.CaptureID != "CAP-123" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Amount != 170 || result.Currency != "USD" {
		t.Fatalf("expected captured amount 170 USD, got %+v", result)
	}
}

func TestPayPalCaptureOrder_ProviderErrorIsGeneric(t *testing.T) {
	server, _ := paypalTestServer(t, http.StatusCreated, http.StatusBadRequest)
	gw := testGateway(server.URL)

	if _, err := gw.CaptureOrder(context.Background(), "PP-123"); err != ErrCaptureFailed {
		t.Fatalf("expected ErrCaptureFailed, got %v", err)
	}
}
