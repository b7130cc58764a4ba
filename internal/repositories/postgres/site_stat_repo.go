package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteStatRepository interface {
	// Get returns utils.ErrNotFound while the singleton row does not exist.
	Get(ctx context.Context) (*models.SiteStat, error)
	// Adjust applies delta to one field under a row lock. It returns nil
	// without writing when the row is absent and delta <= 0.
	Adjust(ctx context.Context, field models.StatField, delta int64) (*models.SiteStat, error)
	// Patch overwrites the fields set in p under the row lock, creating the
	// row with zeros first when absent.
	Patch(ctx context.Context, p models.SiteTotalsPatch) (*models.SiteStat, error)
	// Recompute counts live rows of every tracked table and stores the result.
	Recompute(ctx context.Context) (*models.SiteStat, error)
}

var siteStatColumns = []string{
	"total_users", "total_companies", "total_jobs", "total_applications", "updated_at",
}

type siteStatRepo struct {
	tx TxRunner
	db *gorm.DB
}

func NewSiteStatRepo(db *gorm.DB) SiteStatRepository {
	return &siteStatRepo{tx: NewGormTxRunner(db), db: db}
}

func (r *siteStatRepo) Get(ctx context.Context) (*models.SiteStat, error) {
	var row models.SiteStat
	err := r.db.WithContext(ctx).Where("id = ?", models.SiteStatID).Take(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (r *siteStatRepo) Adjust(ctx context.Context, field models.StatField, delta int64) (*models.SiteStat, error) {
	col, ok := field.Column()
	if !ok {
		return nil, fmt.Errorf("unknown stat field %q", field)
	}

	var out *models.SiteStat
	err := r.tx.InTx(ctx, func(tx *gorm.DB) error {
		if delta > 0 {
			seed := models.SiteStat{ID: models.SiteStatID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return err
			}
		}

		var row models.SiteStat
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", models.SiteStatID).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		next := row.Apply(field, delta)
		row.UpdatedAt = time.Now().UTC()
		err = tx.Model(&models.SiteStat{}).
			Where("id = ?", models.SiteStatID).
			UpdateColumns(map[string]any{col: next, "updated_at": row.UpdatedAt}).Error
		if err != nil {
			return err
		}
		out = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *siteStatRepo) Patch(ctx context.Context, p models.SiteTotalsPatch) (*models.SiteStat, error) {
	var out models.SiteStat
	err := r.tx.InTx(ctx, func(tx *gorm.DB) error {
		seed := models.SiteStat{ID: models.SiteStatID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var row models.SiteStat
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", models.SiteStatID).
			Take(&row).Error
		if err != nil {
			return err
		}

		out = p.Merge(row.Totals()).Row()
		out.CreatedAt = row.CreatedAt
		out.UpdatedAt = time.Now().UTC()
		return tx.Model(&models.SiteStat{}).
			Where("id = ?", models.SiteStatID).
			UpdateColumns(map[string]any{
				"total_users":        out.TotalUsers,
				"total_companies":    out.TotalCompanies,
				"total_jobs":         out.TotalJobs,
				"total_applications": out.TotalApplications,
				"updated_at":         out.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *siteStatRepo) Recompute(ctx context.Context) (*models.SiteStat, error) {
	var row models.SiteStat
	err := r.tx.InTx(ctx, func(tx *gorm.DB) error {
		var t models.SiteTotals
		counts := []struct {
			model any
			dst   *int64
		}{
			{&models.User{}, &t.TotalUsers},
			{&models.Company{}, &t.TotalCompanies},
			{&models.Job{}, &t.TotalJobs},
			{&models.Application{}, &t.TotalApplications},
		}
		for _, c := range counts {
			if err := tx.Model(c.model).Count(c.dst).Error; err != nil {
				return err
			}
		}
		row = t.Row()
		return upsertSiteStat(tx, &row)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func upsertSiteStat(db *gorm.DB, row *models.SiteStat) error {
	row.UpdatedAt = time.Now().UTC()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(siteStatColumns),
	}).Create(row).Error
}
