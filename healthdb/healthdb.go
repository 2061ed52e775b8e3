// Package healthdb caches the most recent serialized report in a local
// SQLite database so it can be read back without re-sampling the host.
package healthdb

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	dbOnce sync.Once
	dbInst *gorm.DB
	dbErr  error
)

// Entry is a simple key/value row scoped by module. Value V is the report
// JSON (TEXT), but the schema is agnostic.
type Entry struct {
	ID        uint      `gorm:"primaryKey"`
	Module    string    `gorm:"index:idx_module_key,unique"`
	K         string    `gorm:"index:idx_module_key,unique"`
	V         string    `gorm:"type:text"`
	CachedAt  time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// getDefaultDBPath chooses a persistent location when possible, otherwise
// falls back to tmp.
func getDefaultDBPath() string {
	// An explicit state dir always wins
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		_ = os.MkdirAll(filepath.Join(xdgState, "syshealth"), 0o755)
		return filepath.Join(xdgState, "syshealth", "health.db")
	}
	// Non-root users keep state under their home
	if os.Geteuid() != 0 {
		if home := os.Getenv("HOME"); home != "" {
			stateDir := filepath.Join(home, ".local", "state", "syshealth")
			_ = os.MkdirAll(stateDir, 0o755)
			return filepath.Join(stateDir, "health.db")
		}
	}
	// Root or no HOME: use /var/lib/syshealth if possible
	if os.Geteuid() == 0 {
		if err := os.MkdirAll("/var/lib/syshealth", 0o755); err == nil {
			return "/var/lib/syshealth/health.db"
		}
	}
	tmp := filepath.Join(os.TempDir(), "syshealth")
	_ = os.MkdirAll(tmp, 0o755)
	return filepath.Join(tmp, "health.db")
}

// Get returns the shared *gorm.DB instance (initializing it on first use).
// An unopenable cache database is an error for the caller to report, never a
// reason to stop monitoring.
func Get() (*gorm.DB, error) {
	dbOnce.Do(func() {
		path := getDefaultDBPath()
		gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Error)})
		if err != nil {
			dbErr = fmt.Errorf("healthdb: failed to open SQLite database at %s: %w", path, err)
			return
		}
		if err := gdb.AutoMigrate(&Entry{}); err != nil {
			dbErr = fmt.Errorf("healthdb: failed to migrate schema: %w", err)
			return
		}
		dbInst = gdb
		log.Debug().Str("path", path).Msg("healthdb: initialized SQLite database")
	})
	return dbInst, dbErr
}

// PutJSON stores a JSON string value under (module, key), replacing any
// previous value.
func PutJSON(module, key, json string, cachedAt time.Time) error {
	if cachedAt.IsZero() {
		cachedAt = time.Now()
	}
	db, err := Get()
	if err != nil {
		return err
	}
	// Avoid "record not found" logs by checking existence first
	var cnt int64
	if err := db.Model(&Entry{}).Where("module = ? AND k = ?", module, key).Count(&cnt).Error; err != nil {
		return fmt.Errorf("healthdb: count failed: %w", err)
	}
	if cnt > 0 {
		var existing Entry
		if err := db.Where("module = ? AND k = ?", module, key).First(&existing).Error; err != nil {
			return fmt.Errorf("healthdb: fetch failed: %w", err)
		}
		existing.V = json
		existing.CachedAt = cachedAt
		return db.Save(&existing).Error
	}
	entry := Entry{Module: module, K: key, V: json, CachedAt: cachedAt}
	return db.Create(&entry).Error
}

// GetJSON retrieves a JSON string value for (module, key).
func GetJSON(module, key string) (json string, cachedAt time.Time, found bool, err error) {
	db, err := Get()
	if err != nil {
		return "", time.Time{}, false, err
	}
	var cnt int64
	if err := db.Model(&Entry{}).Where("module = ? AND k = ?", module, key).Count(&cnt).Error; err != nil {
		return "", time.Time{}, false, err
	}
	if cnt == 0 {
		return "", time.Time{}, false, nil
	}
	var entry Entry
	if err := db.Where("module = ? AND k = ?", module, key).First(&entry).Error; err != nil {
		return "", time.Time{}, false, err
	}
	return entry.V, entry.CachedAt, true, nil
}

// Delete removes a key for a given module.
func Delete(module, key string) error {
	db, err := Get()
	if err != nil {
		return err
	}
	return db.Where("module = ? AND k = ?", module, key).Delete(&Entry{}).Error
}
