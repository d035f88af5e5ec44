package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/roostery/internal/config"
	"github.com/mamadbah2/roostery/internal/domain/models"
)

func newTestServer(t *testing.T, routes map[string]interface{}) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "missing token"})
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "no such collection"})
			return
		}
		if r.Header.Get(IdentityHeader) == "" {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "identity required"})
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClient_Collections(t *testing.T) {
	srv := newTestServer(t, map[string]interface{}{
		"/sales": []models.SalesTransaction{
			{ID: "tx-1", Date: "2024-03-01", Breed: "Kelso", Amount: 1000, PaymentStatus: models.PaymentPaid},
		},
		"/sales/stats":     models.SalesStats{TotalTransactions: 4, PendingPayments: 300},
		"/roosters":        []models.Rooster{{ID: "r-1", Health: models.HealthFair, DateAdded: "2024-02-01"}},
		"/roosters/stats":  models.RoosterStats{Total: 3, Available: 2, Sold: 1},
		"/inventory/stats": models.InventoryStats{TotalItems: 5, LowStockItems: 1},
		"/reviews":         []models.Review{{ID: "rv-1", Date: "2024-03-01", Rating: 5}},
	})

	client := NewClient(config.RecordsConfig{BaseURL: srv.URL + "/", APIToken: "secret"})
	ctx := context.Background()

	txs, err := client.SalesTransactions(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "Kelso", txs[0].Breed)

	salesStats, err := client.SalesStats(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, salesStats.PendingPayments)

	roosters, err := client.Roosters(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, models.HealthFair, roosters[0].Health)

	roosterStats, err := client.RoosterStats(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 2, roosterStats.Available)

	invStats, err := client.InventoryStats(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 1, invStats.LowStockItems)

	reviews, err := client.Reviews(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestAPIClient_Errors(t *testing.T) {
	srv := newTestServer(t, map[string]interface{}{"/sales": []models.SalesTransaction{}})
	ctx := context.Background()

	t.Run("api error message", func(t *testing.T) {
		client := NewClient(config.RecordsConfig{BaseURL: srv.URL, APIToken: "secret"})
		_, err := client.Roosters(ctx, "owner-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code=404")
		assert.Contains(t, err.Error(), "no such collection")
	})

	t.Run("identity omitted", func(t *testing.T) {
		client := NewClient(config.RecordsConfig{BaseURL: srv.URL, APIToken: "secret"})
		_, err := client.SalesTransactions(ctx, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "identity required")
	})

	t.Run("unauthorized", func(t *testing.T) {
		client := NewClient(config.RecordsConfig{BaseURL: srv.URL})
		_, err := client.SalesTransactions(ctx, "owner-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "code=401")
	})

	t.Run("transport failure", func(t *testing.T) {
		client := NewClient(config.RecordsConfig{BaseURL: "http://127.0.0.1:1"})
		_, err := client.SalesStats(ctx, "owner-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "get /sales/stats")
	})
}
