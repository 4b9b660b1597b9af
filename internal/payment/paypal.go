package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/feliksshtein/wall-art-backend/internal/pricing"
)

// PayPalGateway talks to the PayPal Orders v2 API. A fresh
// client-credentials token is obtained per call; there is no token cache.
type PayPalGateway struct {
	baseURL      string
	clientID     string
	clientSecret string
	appURL       string
	client       *http.Client
}

// PayPalConfig configures the real gateway.
type PayPalConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	AppURL       string
}

func NewPayPalGateway(cfg PayPalConfig) *PayPalGateway {
	return &PayPalGateway{
		baseURL:      cfg.BaseURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		appURL:       cfg.AppURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *PayPalGateway) accessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.clientID, g.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", err
	}
	if res.StatusCode != http.StatusOK || body.AccessToken == "" {
		return "", fmt.Errorf("token request returned status %d", res.StatusCode)
	}
	return body.AccessToken, nil
}

// usd formats an amount as the provider's two-decimal string.
func usd(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

func (g *PayPalGateway) CreateOrder(ctx context.Context, params CreateOrderParams) (Order, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		log.Error().Err(err).Msg("PayPal token request failed")
		return Order{}, ErrCreateFailed
	}

	// compact audit payload carried as opaque metadata on the order
	customID, err := json.Marshal(struct {
		CustomerEmail string         `json:"customerEmail,omitempty"`
		CustomerName  string         `json:"customerName,omitempty"`
		Items         []VerifiedItem `json:"items,omitempty"`
	}{params.Customer.Email, params.Customer.Name, params.Items})
	if err != nil {
		return Order{}, ErrCreateFailed
	}

	itemTotal := params.Amount - pricing.ShippingCostUSD
	payload := map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []map[string]any{{
			"amount": map[string]any{
				"currency_code": params.Currency,
				"value":         usd(params.Amount),
				"breakdown": map[string]any{
					"item_total": map[string]any{
						"currency_code": params.Currency,
						"value":         usd(itemTotal),
					},
					"shipping": map[string]any{
						"currency_code": params.Currency,
						"value":         usd(pricing.ShippingCostUSD),
					},
				},
			},
			"description": "Felix Shtein Wall Art",
			"custom_id":   string(customID),
		}},
		"application_context": map[string]any{
			"brand_name":   "Felix Shtein",
			"landing_page": "NO_PREFERENCE",
			"user_action":  "PAY_NOW",
			"return_url":   g.appURL + "/checkout/success",
			"cancel_url":   g.appURL + "/checkout",
		},
	}

	res, body, err := g.post(ctx, "/v2/checkout/orders", token, payload)
	if err != nil {
		log.Error().Err(err).Msg("PayPal create order request failed")
		return Order{}, ErrCreateFailed
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Error().Int("status", res.StatusCode).RawJSON("response", jsonOrRaw(body)).Msg("PayPal create order error")
		return Order{}, ErrCreateFailed
	}

	var ord Order
	if err := json.Unmarshal(body, &ord); err != nil {
		log.Error().Err(err).Msg("PayPal create order response unreadable")
		return Order{}, ErrCreateFailed
	}
	return ord, nil
}

func (g *PayPalGateway) CaptureOrder(ctx context.Context, orderID string) (CaptureResult, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		log.Error().Err(err).Msg("PayPal token request failed")
		return CaptureResult{}, ErrCaptureFailed
	}

	res, body, err := g.post(ctx, "/v2/checkout/orders/"+orderID+"/capture", token, nil)
	if err != nil {
		log.Error().Err(err).Msg("PayPal capture request failed")
		return CaptureResult{}, ErrCaptureFailed
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		log.Error().Int("status", res.StatusCode).RawJSON("response", jsonOrRaw(body)).Msg("PayPal capture error")
		return CaptureResult{}, ErrCaptureFailed
	}

	var captureData struct {
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID     string `json:"id"`
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(body, &captureData); err != nil {
		log.Error().Err(err).Msg("PayPal capture response unreadable")
		return CaptureResult{}, ErrCaptureFailed
	}

	result := CaptureResult{
		Status:        captureData.Status,
		PayPalOrderID: orderID,
	}
	if len(captureData.PurchaseUnits) > 0 && len(captureData.PurchaseUnits[0].Payments.Captures) > 0 {
		capture := captureData.PurchaseUnits[0].Payments.Captures[0]
		result.CaptureID = capture.ID
		result.Currency = capture.Amount.CurrencyCode
		if amount, err := decimal.NewFromString(capture.Amount.Value); err == nil {
			result.Amount = amount.InexactFloat64()
		}
	}
	return result, nil
}

func (g *PayPalGateway) post(ctx context.Context, path, token string, payload any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, nil, err
	}
	return res, body, nil
}

// jsonOrRaw keeps log output valid JSON even when the provider returns
// something else.
func jsonOrRaw(body []byte) []byte {
	if json.Valid(body) {
		return body
	}
	quoted, _ := json.Marshal(string(body))
	return quoted
}
