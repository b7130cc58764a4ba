package models

import "time"

const (
	MinProficiency     = 1
	MaxProficiency     = 5
	DefaultProficiency = 3
)

type Skill struct {
	ID          string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Skill) TableName() string { return "skills" }

// UserSkill links a user to a skill. One row per (user, skill).
type UserSkill struct {
	UserID      string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	SkillID     string `gorm:"column:skill_id;type:uuid;primaryKey" json:"skill_id"`
	Proficiency int    `gorm:"column:proficiency;not null" json:"proficiency"`

	Skill *Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (UserSkill) TableName() string { return "user_skills" }

// SkillAttachment asks for a skill to be linked to a user. A nil Proficiency
// keeps an existing link untouched and creates new links at DefaultProficiency.
type SkillAttachment struct {
	SkillID     string
	Proficiency *int
}
