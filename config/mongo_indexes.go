package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureMongoIndexes(db *mongo.Database) error {
	if db == nil {
		return errors.New("mongo database is nil; call InitMongo() first")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	events := db.Collection("ingestion_events")
	_, err := events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// expire at ExpiresAt (must be Date)
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("ttl_expires_at").
				SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_user_created"),
		},
		{
			Keys:    bson.D{{Key: "outcome", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_outcome_created"),
		},
	})
	return err
}
