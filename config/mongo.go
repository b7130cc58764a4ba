package config

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client

// InitMongo connects when MONGO_URI is set and leaves MongoClient nil otherwise.
func InitMongo() error {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetServerSelectionTimeout(20 * time.Second).
		SetConnectTimeout(15 * time.Second).
		SetMaxPoolSize(10).
		SetMinPoolSize(1)

	// Atlas rejects some Go 1.24 TLS handshakes; pin TLS 1.2 on request.
	if os.Getenv("MONGO_FORCE_TLS_CONFIG") == "true" {
		clientOpts = clientOpts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS12,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return err
	}

	MongoClient = client
	return nil
}

// MongoDatabase returns the named database, or nil without a client.
func MongoDatabase(name string) *mongo.Database {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Database(name)
}
