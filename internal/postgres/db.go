// Package postgres is the relational-cluster deployment variant of the lead
// store. A deployment selects either this store or the sqlite one at startup;
// the two never run together.
package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps a gorm Postgres connection
type DB struct {
	*gorm.DB
}

// New opens a Postgres connection from a DSN or URL.
func New(dsn string) (*DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the leads table if it doesn't exist.
func (db *DB) RunMigrations() error {
	if err := db.AutoMigrate(&leadRow{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
