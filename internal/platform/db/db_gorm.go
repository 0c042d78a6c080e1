package db

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "mindscan_backend/internal/feature/auth/adapters"
	"mindscan_backend/internal/feature/auth/domain/entity"
	entriesadapters "mindscan_backend/internal/feature/entries/adapters"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLitePath = "data/mindscan.db"
	connectTimeout    = 60 * time.Second
	retryInterval     = 3 * time.Second
)

// Config は環境変数から解決したデータベース接続設定を保持します。
type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string
	// Path is the SQLite database file, used when Driver is "sqlite".
	Path string
	// DSN is the PostgreSQL connection string, used when Driver is "postgres".
	DSN string
}

// LoadConfig は環境変数から接続設定を読み込みます。既定は単一ファイルのSQLiteです。
func LoadConfig() Config {
	cfg := Config{
		Driver: os.Getenv("DB_DRIVER"),
		Path:   os.Getenv("DB_PATH"),
		DSN:    os.Getenv("DATABASE_DSN"),
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.Path == "" {
		cfg.Path = defaultSQLitePath
	}
	return cfg
}

// Open opens the configured database. TranslateError is enabled so adapters
// can detect duplicates through gorm.ErrDuplicatedKey on either driver.
func Open(cfg Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{TranslateError: true}

	switch cfg.Driver {
	case DriverSQLite:
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
		gdb, err := gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
		}
		return gdb, nil

	case DriverPostgres:
		return ConnectWithRetry(cfg.DSN, connectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), gormCfg)
		})

	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.Driver)
	}
}

// Opener opens a gorm DB handle for the given DSN.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry dials through opener until it succeeds or timeout elapses.
// コンテナ起動直後はDBの受け付けが始まっていないことがあるためリトライする。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := opener(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// Migrate runs schema migrations for all persisted models.
func Migrate(gdb *gorm.DB) error {
	// マイグレーション（User, Session, Entry）
	if err := gdb.AutoMigrate(
		&entity.User{},
		&authadapters.SessionModel{},
		&entriesadapters.EntryModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return dropLegacyMoodColumn(gdb)
}

// dropLegacyMoodColumn removes the free-form "mood" column that early
// installations carried on the entries table before sentiment scoring.
func dropLegacyMoodColumn(gdb *gorm.DB) error {
	m := gdb.Migrator()
	if !m.HasColumn(&entriesadapters.EntryModel{}, "mood") {
		return nil
	}
	slog.Info("dropping legacy mood column from entries table")
	if err := m.DropColumn(&entriesadapters.EntryModel{}, "mood"); err != nil {
		return fmt.Errorf("drop legacy mood column: %w", err)
	}
	return nil
}
