package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresDialector builds the PostgreSQL dialector.
func NewPostgresDialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	})
}
