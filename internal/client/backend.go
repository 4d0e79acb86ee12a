// Package client is the thin backend-client layer: JSON over HTTP against
// the order service that owns tables, the general item catalog and order
// processing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/casaverde/comanda/internal/domain"
)

type BackendClient struct {
	baseURL string
	client  *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type submitOrderRequest struct {
	OrderType domain.OrderType  `json:"order_type"`
	TableID   string            `json:"table_id,omitempty"`
	Items     []domain.LineItem `json:"items"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Submit creates one order on the backend. A non-2xx answer is turned into
// an error carrying the backend's own message when it sent one.
func (c *BackendClient) Submit(ctx context.Context, orderType domain.OrderType, tableID string, items []domain.LineItem) (domain.OrderResult, error) {
	payload, err := json.Marshal(submitOrderRequest{
		OrderType: orderType,
		TableID:   tableID,
		Items:     items,
	})
	if err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to marshal order: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/orders", payload)
	if err != nil {
		return domain.OrderResult{}, err
	}

	var result domain.OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.OrderResult{}, fmt.Errorf("failed to parse order response: %w", err)
	}

	return result, nil
}

// Items fetches the general item catalog.
func (c *BackendClient) Items(ctx context.Context) ([]domain.LooseItem, error) {
	body, err := c.do(ctx, http.MethodGet, "/items", nil)
	if err != nil {
		return nil, err
	}

	var items []domain.LooseItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to parse items response: %w", err)
	}

	return items, nil
}

// Tables fetches the tables available for dine-in service.
func (c *BackendClient) Tables(ctx context.Context) ([]domain.Table, error) {
	body, err := c.do(ctx, http.MethodGet, "/tables", nil)
	if err != nil {
		return nil, err
	}

	var tables []domain.Table
	if err := json.Unmarshal(body, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse tables response: %w", err)
	}

	return tables, nil
}

func (c *BackendClient) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Message != "" {
				return nil, fmt.Errorf("%s", errResp.Message)
			}
			if errResp.Error != "" {
				return nil, fmt.Errorf("%s", errResp.Error)
			}
		}
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	return body, nil
}
