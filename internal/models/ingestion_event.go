package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	IngestionOK                = "ok"
	IngestionStorageFailed     = "storage_failed"
	IngestionExtractionFailed  = "extraction_failed"
	IngestionPersistenceFailed = "persistence_failed"
)

// IngestionEvent records one CV submission attempt, successful or not.
type IngestionEvent struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID string             `bson:"user_id" json:"user_id"`
	CVID   string             `bson:"cv_id,omitempty" json:"cv_id,omitempty"`

	Outcome      string `bson:"outcome" json:"outcome"`
	Filename     string `bson:"filename,omitempty" json:"filename,omitempty"`
	Extension    string `bson:"extension,omitempty" json:"extension,omitempty"`
	RawFallback  bool   `bson:"raw_fallback,omitempty" json:"raw_fallback,omitempty"` // no dedicated reader for Extension
	StoragePath  string `bson:"storage_path,omitempty" json:"storage_path,omitempty"`
	TextLength   int    `bson:"text_length" json:"text_length"`
	MatchedCount int    `bson:"matched_count" json:"matched_count"`
	Error        string `bson:"error,omitempty" json:"error,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // TTL index
}
