// Package catalogclient is the HTTP client a cart-holding front-end uses
// to fetch live product records from the storefront API.
package catalogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crafthub/storefront/internal/cart"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(storefrontURL string) *Client {
	return &Client{
		baseURL: storefrontURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type productEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Product *struct {
		ID           uuid.UUID       `json:"id"`
		Name         string          `json:"name"`
		ImageURL     string          `json:"imageUrl"`
		CurrentPrice decimal.Decimal `json:"currentPrice"`
	} `json:"product"`
}

// FetchProduct satisfies cart.ProductFetcher. A 404 maps to
// cart.ErrNotFound so the cart can treat a deleted product as a clean
// no-op instead of a transport failure.
func (c *Client) FetchProduct(ctx context.Context, id uuid.UUID) (*cart.ProductSnapshot, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/products/"+id.String(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, cart.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch product failed with status: %d", resp.StatusCode)
	}

	var result productEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !result.Success || result.Product == nil {
		return nil, cart.ErrNotFound
	}

	p := result.Product
	return &cart.ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Price:    p.CurrentPrice,
	}, nil
}
