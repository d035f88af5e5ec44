package records

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/roostery/internal/config"
	"github.com/mamadbah2/roostery/internal/domain/models"
)

// IdentityHeader carries the caller identity to the records API.
const IdentityHeader = "X-User-ID"

// APIClient reads farm records from the dashboard records REST API.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a records API client using the provided configuration values.
func NewClient(cfg config.RecordsConfig) *APIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.APIToken != "" {
		restyClient.SetAuthToken(cfg.APIToken)
	}

	return &APIClient{httpClient: restyClient}
}

// apiError represents an error payload returned by the records API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SalesTransactions fetches every sales transaction visible to identity.
func (c *APIClient) SalesTransactions(ctx context.Context, identity string) ([]models.SalesTransaction, error) {
	var out []models.SalesTransaction
	if err := c.get(ctx, identity, "/sales", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesStats fetches the sales ledger summary.
func (c *APIClient) SalesStats(ctx context.Context, identity string) (models.SalesStats, error) {
	var out models.SalesStats
	err := c.get(ctx, identity, "/sales/stats", &out)
	return out, err
}

// Roosters fetches every rooster visible to identity.
func (c *APIClient) Roosters(ctx context.Context, identity string) ([]models.Rooster, error) {
	var out []models.Rooster
	if err := c.get(ctx, identity, "/roosters", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RoosterStats fetches rooster counts per status.
func (c *APIClient) RoosterStats(ctx context.Context, identity string) (models.RoosterStats, error) {
	var out models.RoosterStats
	err := c.get(ctx, identity, "/roosters/stats", &out)
	return out, err
}

// InventoryStats fetches the supply inventory summary.
func (c *APIClient) InventoryStats(ctx context.Context, identity string) (models.InventoryStats, error) {
	var out models.InventoryStats
	err := c.get(ctx, identity, "/inventory/stats", &out)
	return out, err
}

// Reviews fetches all reviews, newest first as served by the API.
func (c *APIClient) Reviews(ctx context.Context, identity string) ([]models.Review, error) {
	var out []models.Review
	if err := c.get(ctx, identity, "/reviews", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) get(ctx context.Context, identity, path string, result interface{}) error {
	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if identity != "" {
		req.SetHeader(IdentityHeader, identity)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		if message == "" {
			message = resp.Status()
		}
		return fmt.Errorf("records api error: path=%s, code=%d, message=%s", path, resp.StatusCode(), message)
	}

	return nil
}
