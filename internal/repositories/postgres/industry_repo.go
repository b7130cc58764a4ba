package postgres

import (
	"context"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
)

type IndustryRepository interface {
	List(ctx context.Context) ([]models.Industry, error)
	GetByID(ctx context.Context, id uint) (*models.Industry, error)
	// Create returns an error wrapping utils.ErrConflict when the name is taken.
	Create(ctx context.Context, in *models.Industry) error
}

type industryRepo struct {
	db *gorm.DB
}

func NewIndustryRepo(db *gorm.DB) IndustryRepository {
	return &industryRepo{db: db}
}

func (r *industryRepo) List(ctx context.Context) ([]models.Industry, error) {
	rows := make([]models.Industry, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *industryRepo) GetByID(ctx context.Context, id uint) (*models.Industry, error) {
	var in models.Industry
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&in).Error; err != nil {
		return nil, notFound(err)
	}
	return &in, nil
}

func (r *industryRepo) Create(ctx context.Context, in *models.Industry) error {
	return conflictOr(r.db.WithContext(ctx).Create(in).Error)
}
