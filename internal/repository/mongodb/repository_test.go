package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/roostery/internal/domain/models"
)

const testDB = "farm"

func ns(coll string) string { return testDB + "." + coll }

func TestOwnerFilter(t *testing.T) {
	assert.Empty(t, ownerFilter(""))
	assert.Equal(t, bson.D{{Key: "userId", Value: "u-1"}}, ownerFilter("u-1"))
}

func TestMongoDBRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sales transactions", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(salesCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: oid},
				{Key: "date", Value: "2024-03-01"},
				{Key: "breed", Value: "Kelso"},
				{Key: "customerName", Value: "Ana"},
				{Key: "amount", Value: int32(1500)},
				{Key: "paymentStatus", Value: "paid"},
				{Key: "status", Value: "completed"},
			},
			bson.D{
				{Key: "_id", Value: "tx-2"},
				{Key: "date", Value: "2024-03-04T10:00:00Z"},
				{Key: "breed", Value: "Hatch"},
				{Key: "amount", Value: 99.5},
				{Key: "paymentStatus", Value: "unpaid"},
			},
		))

		repo := NewFromClient(mt.Client, testDB)
		txs, err := repo.SalesTransactions(context.Background(), "owner-1")
		require.NoError(mt, err)
		require.Len(mt, txs, 2)

		assert.Equal(mt, oid.Hex(), txs[0].ID)
		assert.Equal(mt, 1500.0, txs[0].Amount)
		assert.True(mt, txs[0].IsPaid())
		assert.Equal(mt, "tx-2", txs[1].ID)
		assert.Equal(mt, models.PaymentUnpaid, txs[1].PaymentStatus)
	})

	mt.Run("roosters", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(roostersCollection), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "r-1"},
				{Key: "breed", Value: "Sweater"},
				{Key: "health", Value: "good"},
				{Key: "status", Value: "Available"},
				{Key: "weight", Value: "2.3"},
				{Key: "dateAdded", Value: "2024-01-10"},
			},
			bson.D{{Key: "_id", Value: "r-2"}, {Key: "weight", Value: 2.75}},
			bson.D{{Key: "_id", Value: "r-3"}, {Key: "weight", Value: int32(3)}},
			bson.D{{Key: "_id", Value: "r-4"}, {Key: "weight", Value: true}},
		))

		repo := NewFromClient(mt.Client, testDB)
		roosters, err := repo.Roosters(context.Background(), "")
		require.NoError(mt, err)
		require.Len(mt, roosters, 4)
		assert.Equal(mt, models.HealthGood, roosters[0].Health)
		assert.Equal(mt, models.Weight("2.3"), roosters[0].Weight)
		assert.Equal(mt, models.Weight("2.75"), roosters[1].Weight)
		assert.Equal(mt, models.Weight("3"), roosters[2].Weight)
		assert.Empty(mt, roosters[3].Weight)
	})

	mt.Run("reviews", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(reviewsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "rv-2"}, {Key: "date", Value: "2024-03-02"}, {Key: "rating", Value: int32(4)}},
			bson.D{{Key: "_id", Value: "rv-1"}, {Key: "date", Value: "2024-03-01"}, {Key: "rating", Value: int32(5)}, {Key: "customerId", Value: "c-1"}},
		))

		repo := NewFromClient(mt.Client, testDB)
		reviews, err := repo.Reviews(context.Background(), "ignored")
		require.NoError(mt, err)
		require.Len(mt, reviews, 2)
		assert.Equal(mt, "rv-2", reviews[0].ID)
		assert.Equal(mt, "c-1", reviews[1].CustomerID)
	})

	mt.Run("sales stats", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(salesCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "paid"}, {Key: "count", Value: int32(3)}, {Key: "amount", Value: 6000.0}},
			bson.D{{Key: "_id", Value: "partial"}, {Key: "count", Value: int32(1)}, {Key: "amount", Value: 400.0}},
			bson.D{{Key: "_id", Value: "unpaid"}, {Key: "count", Value: int32(2)}, {Key: "amount", Value: int64(600)}},
		))

		repo := NewFromClient(mt.Client, testDB)
		stats, err := repo.SalesStats(context.Background(), "owner-1")
		require.NoError(mt, err)
		assert.Equal(mt, models.SalesStats{
			TotalTransactions: 6,
			PaidTransactions:  3,
			TotalRevenue:      6000,
			PendingPayments:   1000,
		}, stats)
	})

	mt.Run("rooster stats", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(roostersCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "Available"}, {Key: "count", Value: int32(5)}},
			bson.D{{Key: "_id", Value: "Sold"}, {Key: "count", Value: int32(2)}},
			bson.D{{Key: "_id", Value: "Deceased"}, {Key: "count", Value: int32(1)}},
		))

		repo := NewFromClient(mt.Client, testDB)
		stats, err := repo.RoosterStats(context.Background(), "")
		require.NoError(mt, err)
		assert.Equal(mt, models.RoosterStats{Total: 8, Available: 5, Sold: 2, Deceased: 1}, stats)
	})

	mt.Run("inventory stats", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(inventoryCollection), mtest.FirstBatch,
			bson.D{{Key: "name", Value: "Layer feed"}, {Key: "quantity", Value: 4.0}, {Key: "reorderLevel", Value: 5.0}, {Key: "unitPrice", Value: 20.0}},
			bson.D{{Key: "name", Value: "Vitamins"}, {Key: "quantity", Value: 10.0}, {Key: "reorderLevel", Value: 2.0}, {Key: "unitPrice", Value: 3.5}},
		))

		repo := NewFromClient(mt.Client, testDB)
		stats, err := repo.InventoryStats(context.Background(), "owner-1")
		require.NoError(mt, err)
		assert.Equal(mt, models.InventoryStats{TotalItems: 2, LowStockItems: 1, TotalValue: 115}, stats)
	})

	mt.Run("query failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		repo := NewFromClient(mt.Client, testDB)
		_, err := repo.SalesTransactions(context.Background(), "")
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to query sales_transactions")
	})
}
