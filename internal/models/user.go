package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleJobSeeker UserRole = "job_seeker"
	RoleRecruiter UserRole = "recruiter"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string   `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string   `gorm:"column:name;type:text;not null" json:"name"`
	Email        string   `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"column:password_hash;type:text;not null" json:"-"`
	Phone        string   `gorm:"column:phone;type:text" json:"phone,omitempty"`
	Role         UserRole `gorm:"column:role;type:text;not null" json:"role"`
	CompanyID    *string  `gorm:"column:company_id;type:uuid;index" json:"company_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }
