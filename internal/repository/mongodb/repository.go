package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/roostery/internal/domain/models"
)

const (
	salesCollection     = "sales_transactions"
	roostersCollection  = "roosters"
	inventoryCollection = "inventory"
	reviewsCollection   = "reviews"

	ownerField = "userId"
)

// MongoDBRepository reads farm records from MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewFromClient(client, dbName), nil
}

// NewFromClient wraps an already connected client.
func NewFromClient(client *mongo.Client, dbName string) *MongoDBRepository {
	return &MongoDBRepository{client: client, db: client.Database(dbName)}
}

// SalesTransactions returns every sales transaction visible to identity.
func (r *MongoDBRepository) SalesTransactions(ctx context.Context, identity string) ([]models.SalesTransaction, error) {
	var out []models.SalesTransaction
	if err := r.findAll(ctx, salesCollection, ownerFilter(identity), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Roosters returns every rooster visible to identity.
func (r *MongoDBRepository) Roosters(ctx context.Context, identity string) ([]models.Rooster, error) {
	var out []models.Rooster
	if err := r.findAll(ctx, roostersCollection, ownerFilter(identity), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reviews returns all reviews, newest first. Reviews are not scoped by identity.
func (r *MongoDBRepository) Reviews(ctx context.Context, _ string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	var out []models.Review
	if err := r.findAll(ctx, reviewsCollection, bson.D{}, opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SalesStats groups the sales ledger by payment status.
func (r *MongoDBRepository) SalesStats(ctx context.Context, identity string) (models.SalesStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerFilter(identity)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$paymentStatus"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "amount", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	var groups []struct {
		Status models.PaymentStatus `bson:"_id"`
		Count  int                  `bson:"count"`
		Amount float64              `bson:"amount"`
	}
	if err := r.aggregate(ctx, salesCollection, pipeline, &groups); err != nil {
		return models.SalesStats{}, err
	}

	var stats models.SalesStats
	for _, g := range groups {
		stats.TotalTransactions += g.Count
		if g.Status == models.PaymentPaid {
			stats.PaidTransactions += g.Count
			stats.TotalRevenue += g.Amount
			continue
		}
		stats.PendingPayments += g.Amount
	}
	return stats, nil
}

// RoosterStats counts roosters per status.
func (r *MongoDBRepository) RoosterStats(ctx context.Context, identity string) (models.RoosterStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: ownerFilter(identity)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	var groups []struct {
		Status models.RoosterStatus `bson:"_id"`
		Count  int                  `bson:"count"`
	}
	if err := r.aggregate(ctx, roostersCollection, pipeline, &groups); err != nil {
		return models.RoosterStats{}, err
	}

	var stats models.RoosterStats
	for _, g := range groups {
		stats.Add(g.Status, g.Count)
	}
	return stats, nil
}

// InventoryStats summarises supply items, flagging those at or below reorder level.
func (r *MongoDBRepository) InventoryStats(ctx context.Context, identity string) (models.InventoryStats, error) {
	var items []models.InventoryItem
	if err := r.findAll(ctx, inventoryCollection, ownerFilter(identity), nil, &items); err != nil {
		return models.InventoryStats{}, err
	}

	stats := models.InventoryStats{TotalItems: len(items)}
	for _, item := range items {
		if item.LowStock() {
			stats.LowStockItems++
		}
		stats.TotalValue += item.Quantity * item.UnitPrice
	}
	return stats, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) findAll(ctx context.Context, coll string, filter interface{}, opts *options.FindOptions, out interface{}) error {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}

	cursor, err := r.db.Collection(coll).Find(ctx, filter, findOpts...)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", coll, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", coll, err)
	}
	return nil
}

func (r *MongoDBRepository) aggregate(ctx context.Context, coll string, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to aggregate %s: %w", coll, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s aggregation: %w", coll, err)
	}
	return nil
}

func ownerFilter(identity string) bson.D {
	if identity == "" {
		return bson.D{}
	}
	return bson.D{{Key: ownerField, Value: identity}}
}
