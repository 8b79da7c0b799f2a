// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver) and schema migrations.
package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/voxlate/go-translate-backend/internal/domain"
)

// Sentinel errors shared by the repository functions.
var (
	// ErrNotFound indicates that no row matched the query.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique-constraint violation (duplicate email,
	// replayed idempotency key).
	ErrDuplicate = errors.New("duplicate")
)

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
// The same file is shared by the web server and the poller process; WAL mode
// plus a busy timeout keeps concurrent single-row writes safe.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if the parent directory does not exist instead of a cryptic
	// sqlite "out of memory (14)".
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.TranslationRequest{},
		&domain.Idempotency{},
	)
}

// isUniqueViolation reports whether err is a unique-constraint failure.
// glebarez/sqlite often reports these as plain-text errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}
