package postgres

import (
	"context"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
)

type CompanyRepository interface {
	Create(ctx context.Context, c *models.Company) error
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	Restore(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	WithTx(tx *gorm.DB) CompanyRepository
}

type companyRepo struct {
	db *gorm.DB
}

func NewCompanyRepo(db *gorm.DB) CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) WithTx(tx *gorm.DB) CompanyRepository {
	return &companyRepo{db: tx}
}

func (r *companyRepo) Create(ctx context.Context, c *models.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*models.Company, error) {
	var c models.Company
	if err := r.db.WithContext(ctx).Preload("Industry").Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *companyRepo) List(ctx context.Context) ([]models.Company, error) {
	var rows []models.Company
	err := r.db.WithContext(ctx).Preload("Industry").Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *companyRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.db, &models.Company{}, id)
}

func (r *companyRepo) Restore(ctx context.Context, id string) (bool, error) {
	return restore(ctx, r.db, &models.Company{}, id)
}

func (r *companyRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return updateColumns(ctx, r.db, &models.Company{}, id, fields)
}
