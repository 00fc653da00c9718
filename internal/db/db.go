package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"chatkiosk/internal/chat"
	"chatkiosk/internal/config"
)

// Connect opens the configured datastore. The default is a local
// sqlite file; mysql is available for deployments that already run
// one.
func Connect(cfg config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "", "sqlite":
		dial = sqlite.Open(cfg.SQLitePath)
	case "mysql":
		dial = mysql.Open(cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER=%q", cfg.DBDriver)
	}
	return gorm.Open(dial, &gorm.Config{})
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&chat.User{}, &chat.Event{})
}
