package postgres

import (
	"context"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create returns an error wrapping utils.ErrConflict for a repeated (job, cv) pair.
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	Restore(ctx context.Context, id string) (bool, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	return conflictOr(r.db.WithContext(ctx).Create(a).Error)
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&a).Error; err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *applicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var rows []models.Application
	err := r.db.WithContext(ctx).
		Preload("CV").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *applicationRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.db, &models.Application{}, id)
}

func (r *applicationRepo) Restore(ctx context.Context, id string) (bool, error) {
	return restore(ctx, r.db, &models.Application{}, id)
}
