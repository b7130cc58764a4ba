package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	return err
}

// IsUniqueViolation reports a duplicate key error from postgres or sqlite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}

// IsRetryable reports serialization failures, deadlocks and lock timeouts.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "40001", "40P01", "55P03": // serialization/deadlock/lock_not_available
			return true
		}
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") || strings.Contains(msg, "database is locked")
}

func conflictOr(err error) error {
	if IsUniqueViolation(err) {
		return errors.Join(utils.ErrConflict, err)
	}
	return err
}
