package models

import (
	"time"

	"gorm.io/datatypes"
)

// CV is the persisted result of one document ingestion.
type CV struct {
	ID               string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID           string  `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	OriginalFilename *string `gorm:"column:original_filename;type:text" json:"original_filename"`
	StoragePath      *string `gorm:"column:storage_path;type:text" json:"storage_path"`
	MimeType         *string `gorm:"column:mime_type;type:text" json:"mime_type"`

	TextContent   string                      `gorm:"column:text_content;type:text;not null" json:"text_content"`
	MatchedSkills datatypes.JSONSlice[string] `gorm:"column:matched_skills" json:"matched_skills"`

	ParsedAt  time.Time `gorm:"column:parsed_at" json:"parsed_at"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CV) TableName() string { return "cvs" }
