package favorites

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage is a key-value slot holding the serialized favorites.
// Load returns ErrNoData when nothing has been saved.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// FileStorage keeps favorites in <dir>/pokelocator-favorites.json.
type FileStorage struct {
	path string
}

// NewFileStorage creates a file-backed storage in dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{path: filepath.Join(dir, StorageKey+".json")}
}

// Path returns the backing file path.
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the file.
func (f *FileStorage) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return data, nil
}

// Save replaces the file atomically.
func (f *FileStorage) Save(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), StorageKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

// RedisStorage keeps favorites under StorageKey in Redis, without expiry.
type RedisStorage struct {
	redis *redis.Client
	key   string
}

// NewRedisStorage creates a Redis-backed storage.
func NewRedisStorage(client *redis.Client) *RedisStorage {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStorage{redis: client, key: StorageKey}
}

// Load reads the value.
func (r *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := r.redis.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Save writes the value.
func (r *RedisStorage) Save(ctx context.Context, data []byte) error {
	if err := r.redis.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// KVEntry is one row of the kv_entries table.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName implements gorm's Tabler.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// SQLiteStorage keeps favorites as one row of a kv_entries table.
type SQLiteStorage struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the table.
func OpenSQLite(path string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewSQLiteStorage(db)
}

// NewSQLiteStorage wraps an open gorm database.
func NewSQLiteStorage(db *gorm.DB) (*SQLiteStorage, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// Load reads the row.
func (s *SQLiteStorage) Load(ctx context.Context) ([]byte, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where(&KVEntry{Key: StorageKey}).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("load kv entry: %w", err)
	}
	return []byte(entry.Value), nil
}

// Save upserts the row.
func (s *SQLiteStorage) Save(ctx context.Context, data []byte) error {
	entry := KVEntry{Key: StorageKey, Value: string(data), UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("save kv entry: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
