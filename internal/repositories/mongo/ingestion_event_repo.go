package mongo

import (
	"context"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	IngestionEventsCollection = "ingestion_events"
	IngestionEventTTL         = 30 * 24 * time.Hour
)

type IngestionEventRepository interface {
	Insert(ctx context.Context, e *models.IngestionEvent) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.IngestionEvent, error)
}

type ingestionEventRepo struct {
	col *mongo.Collection
}

func NewIngestionEventRepo(db *mongo.Database) IngestionEventRepository {
	return &ingestionEventRepo{col: db.Collection(IngestionEventsCollection)}
}

func (r *ingestionEventRepo) Insert(ctx context.Context, e *models.IngestionEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.ExpiresAt.IsZero() {
		e.ExpiresAt = e.CreatedAt.Add(IngestionEventTTL)
	}
	_, err := r.col.InsertOne(ctx, e)
	return err
}

func (r *ingestionEventRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.IngestionEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]models.IngestionEvent, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
