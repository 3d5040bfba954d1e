package database

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQLDialector builds the MySQL dialector.
func NewMySQLDialector(dsn string) gorm.Dialector {
	return mysql.New(mysql.Config{
		DSN:                       dsn,
		DefaultStringSize:         255,
		DontSupportRenameIndex:    false,
		SkipInitializeWithVersion: false,
	})
}
