package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seenimoa/secanalyzer/internal/config"
	"github.com/seenimoa/secanalyzer/pkg/models"
)

const mongoConnectTimeout = 5 * time.Second

// collection is the part of *mongo.Collection the store uses.
type collection interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// Mongo stores each result as one document.
type Mongo struct {
	client *mongo.Client
	coll   collection
}

// NewMongo connects and pings the configured MongoDB.
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*Mongo, error) {
	cctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(mongoConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Mongo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Upsert replaces the fields of the document for the result's ticker and
// period, creating it when absent.
func (m *Mongo) Upsert(ctx context.Context, r *models.AnalysisResult) error {
	if r == nil {
		return ErrNilResult
	}
	_, err := m.coll.UpdateOne(ctx, mongoFilter(r), bson.M{"$set": r}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert %s: %w", r.Meta.Ticker, err)
	}
	return nil
}

func mongoFilter(r *models.AnalysisResult) bson.M {
	return bson.M{
		"meta.ticker":     r.Meta.Ticker,
		"meta.period_end": r.Meta.PeriodEnd,
	}
}

func (m *Mongo) Name() string { return BackendMongo }

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
