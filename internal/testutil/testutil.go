package testutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	}
}

// Logger returns a logger that discards output.
func Logger(tb testing.TB) *logrus.Logger {
	tb.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.DebugLevel)
	return l
}

// SQLite opens a fresh migrated file database for one test. A single
// connection serialises every statement, including transactions.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000"), gormConfig())
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.Migratable()...); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// Postgres returns the shared integration database, skipping the test when
// TEST_POSTGRES_DSN is not set. Tables named in reset are emptied first.
func Postgres(tb testing.TB, reset ...string) *gorm.DB {
	tb.Helper()

	pgOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			pgErr = errMissingDSN
			return
		}
		pgDB, pgErr = gorm.Open(postgres.Open(dsn), gormConfig())
		if pgErr != nil {
			return
		}
		pgErr = pgDB.AutoMigrate(models.Migratable()...)
	})

	if errors.Is(pgErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run postgres integration tests")
	}
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}

	for _, table := range reset {
		if err := pgDB.Exec("DELETE FROM " + table).Error; err != nil {
			tb.Fatalf("reset %s: %v", table, err)
		}
	}
	return pgDB
}
