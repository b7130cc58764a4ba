package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationPending     = "pending"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
)

type Application struct {
	ID         string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID      string   `gorm:"column:job_id;type:uuid;not null;uniqueIndex:uniq_application_job_cv" json:"job_id"`
	CVID       string   `gorm:"column:cv_id;type:uuid;not null;uniqueIndex:uniq_application_job_cv" json:"cv_id"`
	UserID     string   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	MatchScore *float64 `gorm:"column:match_score" json:"match_score,omitempty"`
	Status     string   `gorm:"column:status;type:text;not null" json:"status"`

	CV *CV `gorm:"foreignKey:CVID" json:"cv,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Application) TableName() string { return "applications" }
