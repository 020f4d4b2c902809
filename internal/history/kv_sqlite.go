package history

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is one key-value row in the local store
type Record struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

// TableName sets the table name for gorm
func (Record) TableName() string { return "kv_records" }

// SQLiteKV implements KV on a local SQLite database. It is the default
// persistent store on hosts that have a filesystem.
type SQLiteKV struct {
	db *gorm.DB
}

// NewSQLiteKV opens (and migrates) the store at dbPath
func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

// Get returns the value stored under key
func (s *SQLiteKV) Get(key string) ([]byte, bool, error) {
	var record Record
	err := s.db.First(&record, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return record.Value, true, nil
}

// Set stores value under key, replacing any previous value
func (s *SQLiteKV) Set(key string, value []byte) error {
	record := Record{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&record).Error
}

// Close closes the database connection
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
