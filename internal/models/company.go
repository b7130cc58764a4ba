package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID            string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string `gorm:"column:name;type:text;not null" json:"name"`
	Description   string `gorm:"column:description;type:text" json:"description,omitempty"`
	Website       string `gorm:"column:website;type:text" json:"website,omitempty"`
	ContactPerson string `gorm:"column:contact_person;type:text" json:"contact_person,omitempty"`
	ContactEmail  string `gorm:"column:contact_email;type:text" json:"contact_email,omitempty"`
	ContactPhone  string `gorm:"column:contact_phone;type:text" json:"contact_phone,omitempty"`

	IndustryID *uint     `gorm:"column:industry_id;index" json:"industry_id,omitempty"`
	Industry   *Industry `gorm:"foreignKey:IndustryID" json:"industry,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Company) TableName() string { return "companies" }
