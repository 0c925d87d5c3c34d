package database

import (
	"fmt"
	"log"
	"time"

	"go-parfait-pos/internal/config"
	"go-parfait-pos/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store and waits for it to come up. MySQL is the
// default; DB_DRIVER=sqlite runs the whole shop off a single local file,
// which is what most single-till installs use.
func Connect(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN not set: configure your database in .env")
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DBDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want mysql or sqlite)", cfg.DBDriver)
	}

	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after 5 attempts: %w", err)
	}

	log.Printf("✅ Connected to %s store", cfg.DBDriver)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Flavor{},
		&models.Sale{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	log.Println("✅ Database schema synced")

	return db, nil
}

// Ping reports whether the store is currently reachable. The login flow
// uses this to decide between online auth and the offline cache.
func Ping(db *gorm.DB) bool {
	sqlDB, err := db.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
