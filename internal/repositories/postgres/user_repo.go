package postgres

import (
	"context"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	// Create returns an error wrapping utils.ErrConflict when the email is taken.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
	Restore(ctx context.Context, id string) (bool, error)
	// Update writes the given columns of a live user. A taken email wraps
	// utils.ErrConflict.
	Update(ctx context.Context, id string, fields map[string]any) error
	WithTx(tx *gorm.DB) UserRepository
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(tx *gorm.DB) UserRepository {
	return &userRepo{db: tx}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return conflictOr(r.db.WithContext(ctx).Create(u).Error)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Take(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	return softDelete(ctx, r.db, &models.User{}, id)
}

func (r *userRepo) Restore(ctx context.Context, id string) (bool, error) {
	return restore(ctx, r.db, &models.User{}, id)
}

func (r *userRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	return updateColumns(ctx, r.db, &models.User{}, id, fields)
}
