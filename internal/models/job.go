package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"

	DefaultSalary = "Negotiable"
)

var (
	JobWorkTypes = []string{"remote", "onsite", "hybrid"}
	JobWorkTimes = []string{"full_time", "part_time"}
)

type Job struct {
	ID          string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID   string  `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`
	CreatedBy   *string `gorm:"column:created_by;type:uuid;index" json:"created_by,omitempty"`
	Title       string  `gorm:"column:title;type:text;not null" json:"title"`
	Description string  `gorm:"column:description;type:text;not null" json:"description"`
	WorkType    string  `gorm:"column:work_type;type:text;not null" json:"work_type"`
	WorkTime    string  `gorm:"column:work_time;type:text;not null" json:"work_time"`
	Salary      string  `gorm:"column:salary;type:text" json:"salary"`
	Benefits    *string `gorm:"column:benefits;type:text" json:"benefits,omitempty"`

	RequiredSkills datatypes.JSONSlice[string] `gorm:"column:required_skills" json:"required_skills"`
	Status         string                      `gorm:"column:status;type:text;not null" json:"status"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Job) TableName() string { return "jobs" }
