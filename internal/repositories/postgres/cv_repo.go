package postgres

import (
	"context"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
)

type CVRepository interface {
	Insert(ctx context.Context, cv *models.CV) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.CV, error)
	// GetForOwner returns utils.ErrNotFound when the cv belongs to someone else.
	GetForOwner(ctx context.Context, userID, id string) (*models.CV, error)
	WithTx(tx *gorm.DB) CVRepository
}

type cvRepo struct {
	db *gorm.DB
}

func NewCVRepo(db *gorm.DB) CVRepository {
	return &cvRepo{db: db}
}

func (r *cvRepo) WithTx(tx *gorm.DB) CVRepository {
	return &cvRepo{db: tx}
}

func (r *cvRepo) Insert(ctx context.Context, cv *models.CV) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *cvRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.CV, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []models.CV
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *cvRepo) GetForOwner(ctx context.Context, userID, id string) (*models.CV, error) {
	var row models.CV
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Take(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}
