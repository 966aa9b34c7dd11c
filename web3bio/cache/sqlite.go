package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// EntryModel is a persisted API response.
type EntryModel struct {
	Key       string    `gorm:"column:cache_key;primaryKey;size:1024"`
	Payload   []byte    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name stable across model renames.
func (EntryModel) TableName() string {
	return "response_cache"
}

// SQLite is a persistent store backed by a local database file.
type SQLite struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLite opens (or creates) the store at dsn.
func NewSQLite(dsn string, ttl time.Duration, gormLogger logger.Interface) (*SQLite, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if gormLogger == nil {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	dbDir := filepath.Dir(dsn)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, err
	}

	if err := applySQLitePragmas(db); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store := &SQLite{db: db, ttl: ttl, now: time.Now}
	// expired rows are only filtered on read, so reclaim them on every open
	if _, err := store.PruneExpired(context.Background()); err != nil {
		return nil, fmt.Errorf("prune expired entries: %w", err)
	}
	return store, nil
}

// ConfigurePool updates the database connection pool settings.
// Negative values leave the current setting untouched.
func (s *SQLite) ConfigurePool(maxOpen, maxIdle int, maxLifetime time.Duration) error {
	if s == nil || s.db == nil {
		return errors.New("store not configured")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	if maxOpen >= 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime >= 0 {
		sqlDB.SetConnMaxLifetime(maxLifetime)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry EntryModel
	err := s.db.WithContext(ctx).Where("cache_key = ? AND expires_at > ?", key, s.now().UTC()).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Payload, true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.ttl
	}
	entry := EntryModel{
		Key:       key,
		Payload:   payload,
		ExpiresAt: s.now().UTC().Add(ttl),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&entry).Error
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("cache_key = ?", key).Delete(&EntryModel{}).Error
}

func (s *SQLite) Purge(ctx context.Context) error {
	return s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&EntryModel{}).Error
}

// PruneExpired removes expired rows and reports how many were deleted.
func (s *SQLite) PruneExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&EntryModel{})
	return res.RowsAffected, res.Error
}

// Count returns the number of stored rows.
func (s *SQLite) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&EntryModel{}).Count(&count).Error
	return count, err
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func applySQLitePragmas(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA cache_size=-64000;",
	}
	for _, stmt := range pragmas {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
