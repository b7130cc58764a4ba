package postgres

import (
	"context"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
)

type JobFilter struct {
	CompanyID string
	CreatedBy string
	Limit     int
}

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	// List returns jobs newest first, with their company.
	List(ctx context.Context, f JobFilter) ([]models.Job, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	Restore(ctx context.Context, id string) (bool, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		Take(&j).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &j, nil
}

func (r *jobRepo) List(ctx context.Context, f JobFilter) ([]models.Job, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	q := r.db.WithContext(ctx).Preload("Company")
	if f.CompanyID != "" {
		q = q.Where("company_id = ?", f.CompanyID)
	}
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}

	var rows []models.Job
	err := q.Order("created_at DESC").Limit(f.Limit).Find(&rows).Error
	return rows, err
}

func (r *jobRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.db, &models.Job{}, id)
}

func (r *jobRepo) Restore(ctx context.Context, id string) (bool, error) {
	return restore(ctx, r.db, &models.Job{}, id)
}
