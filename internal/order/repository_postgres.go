package order

import (
	"database/sql"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	err = r.db.QueryRow(`INSERT INTO orders (capture_id, paypal_order_id, order_number, status, amount, currency, customer_name, customer_email, items, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING capture_id, paypal_order_id, order_number, status, amount, currency, customer_name, customer_email, items, created_at`,
		ord.CaptureID, ord.PayPalOrderID, ord.OrderNumber, ord.Status, ord.Amount, ord.Currency, ord.CustomerName, ord.CustomerEmail, itemsJSON, ord.CreatedAt).Scan(
		&ord.CaptureID, &ord.PayPalOrderID, &ord.OrderNumber, &ord.Status, &ord.Amount, &ord.Currency, &ord.CustomerName, &ord.CustomerEmail, &itemsJSON, &ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}

	decodeItems(ord.CaptureID, itemsJSON, &ord.Items)
	return ord, nil
}

// decodeItems rehydrates the items column. Corrupt JSON degrades to an
// empty list but is logged, never silently dropped.
func decodeItems(captureID string, data []byte, items *[]Item) {
	if err := json.Unmarshal(data, items); err != nil {
		log.Error().Err(err).Str("captureId", captureID).Msg("order items column is not valid JSON")
		*items = []Item{}
	}
}

func (r *PostgresRepository) GetByCaptureID(captureID string) (Order, error) {
	var ord Order
	var itemsJSON []byte
	err := r.db.QueryRow(`SELECT capture_id, paypal_order_id, order_number, status, amount, currency, customer_name, customer_email, items, created_at
        FROM orders WHERE capture_id = $1`, captureID).Scan(
		&ord.CaptureID, &ord.PayPalOrderID, &ord.OrderNumber, &ord.Status, &ord.Amount, &ord.Currency, &ord.CustomerName, &ord.CustomerEmail, &itemsJSON, &ord.CreatedAt)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	decodeItems(captureID, itemsJSON, &ord.Items)
	return ord, nil
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(`SELECT capture_id, paypal_order_id, order_number, status, amount, currency, customer_name, customer_email, items, created_at
        FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var itemsJSON []byte
		if err := rows.Scan(&ord.CaptureID, &ord.PayPalOrderID, &ord.OrderNumber, &ord.Status, &ord.Amount, &ord.Currency, &ord.CustomerName, &ord.CustomerEmail, &itemsJSON, &ord.CreatedAt); err != nil {
			return nil, err
		}
		decodeItems(ord.CaptureID, itemsJSON, &ord.Items)
		orders = append(orders, ord)
	}

	return orders, nil
}
