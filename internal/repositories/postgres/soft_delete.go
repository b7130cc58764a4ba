package postgres

import (
	"context"
	"maps"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"gorm.io/gorm"
)

// softDelete marks the row deleted. changed is false when it already was.
func softDelete(ctx context.Context, db *gorm.DB, model any, id string) (changed bool, err error) {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(model)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	return false, existsUnscoped(ctx, db, model, id)
}

// restore clears deleted_at. changed is false when the row was live.
func restore(ctx context.Context, db *gorm.DB, model any, id string) (changed bool, err error) {
	res := db.WithContext(ctx).Unscoped().Model(model).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	return false, existsUnscoped(ctx, db, model, id)
}

func existsUnscoped(ctx context.Context, db *gorm.DB, model any, id string) error {
	var n int64
	if err := db.WithContext(ctx).Unscoped().Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// updateColumns writes fields and updated_at on a live row.
func updateColumns(ctx context.Context, db *gorm.DB, model any, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	cols := maps.Clone(fields)
	cols["updated_at"] = time.Now().UTC()

	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return conflictOr(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
