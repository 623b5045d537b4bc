// Package client is the Go consumer of the order API: an HTTP client plus
// the polling watchers that keep the guest tracking view and the staff
// board current without a push channel.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/qrdine/qr-menu/cart"
	"github.com/qrdine/qr-menu/models"
)

type Client struct {
	BaseURL    string
	Token      string // bearer token for the staff surface; empty for guests
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// envelope matches the server's JSON response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PlaceOrder submits cart lines against a table identifier (number or QR
// slug) and returns the persisted order.
func (c *Client) PlaceOrder(tableIdentifier string, lines []cart.Line) (models.Order, error) {
	body, err := json.Marshal(map[string]interface{}{"items": lines})
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	url := fmt.Sprintf("%s/orders/%s/orders", c.BaseURL, tableIdentifier)
	if err := c.do(http.MethodPost, url, body, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(orderID uint) (models.Order, error) {
	var order models.Order
	url := fmt.Sprintf("%s/orders/%d", c.BaseURL, orderID)
	if err := c.do(http.MethodGet, url, nil, &order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// ListOrders fetches the staff board listing, optionally filtered to one
// status. Requires a staff token.
func (c *Client) ListOrders(statusFilter string) ([]models.Order, error) {
	url := c.BaseURL + "/orders"
	if statusFilter != "" {
		url += "?status=" + statusFilter
	}

	var data struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(http.MethodGet, url, nil, &data); err != nil {
		return nil, err
	}
	return data.Orders, nil
}

func (c *Client) do(method, url string, body []byte, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s (%d)", env.Message, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
