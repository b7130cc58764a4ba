package postgres

import (
	"context"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepository interface {
	List(ctx context.Context) ([]models.Skill, error)
	ListNames(ctx context.Context) ([]string, error)
	Create(ctx context.Context, s *models.Skill) error
	// IDsByNames maps each known name to its skill id. Unknown names are left out.
	IDsByNames(ctx context.Context, names []string) (map[string]string, error)
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)

	UserSkills(ctx context.Context, userID string) ([]models.UserSkill, error)
	// Attach links skills to a user. It never removes links, and an attachment
	// without proficiency leaves an existing link as it is.
	Attach(ctx context.Context, userID string, atts []models.SkillAttachment) error

	WithTx(tx *gorm.DB) SkillRepository
}

type skillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) WithTx(tx *gorm.DB) SkillRepository {
	return &skillRepo{db: tx}
}

func (r *skillRepo) List(ctx context.Context) ([]models.Skill, error) {
	var rows []models.Skill
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *skillRepo) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *skillRepo) Create(ctx context.Context, s *models.Skill) error {
	return conflictOr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *skillRepo) IDsByNames(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	if len(names) == 0 {
		return out, nil
	}
	var rows []models.Skill
	err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("name IN ?", names).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.Name] = s.ID
	}
	return out, nil
}

func (r *skillRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	out := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []string
	err := r.db.WithContext(ctx).
		Model(&models.Skill{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

func (r *skillRepo) UserSkills(ctx context.Context, userID string) ([]models.UserSkill, error) {
	var rows []models.UserSkill
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *skillRepo) Attach(ctx context.Context, userID string, atts []models.SkillAttachment) error {
	db := r.db.WithContext(ctx)
	now := time.Now().UTC()

	for _, a := range atts {
		row := models.UserSkill{
			UserID:      userID,
			SkillID:     a.SkillID,
			Proficiency: models.DefaultProficiency,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		conflict := clause.OnConflict{DoNothing: true}
		if a.Proficiency != nil {
			row.Proficiency = *a.Proficiency
			conflict = clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"proficiency", "updated_at"}),
			}
		}
		if err := db.Clauses(conflict).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
