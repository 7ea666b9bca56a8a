package config

import (
	"fmt"

	"postboard/internal/core/post"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// OpenDB connects to the SQL store selected by cfg.StoreDriver and migrates the posts table.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.DBDSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("store driver %q is not a SQL driver", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&post.Post{}); err != nil {
		return nil, fmt.Errorf("migrate posts: %w", err)
	}

	Logger.Info("Database connected", zap.String("driver", cfg.StoreDriver))
	return db, nil
}
