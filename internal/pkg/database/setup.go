package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/ramoneds/linkwhats/app/models"
	"github.com/ramoneds/linkwhats/internal/pkg/bootstrap"
	"github.com/ramoneds/linkwhats/internal/pkg/env"
)

var DB *gorm.DB

const connectAttempts = 5
const connectBaseDelay = time.Second

func SetupDatabase() {
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	b := bootstrap.NewBackoff()
	// Retry runs the first attempt before consuming a delay.
	b.MaxAttempts = connectAttempts - 1
	b.BaseDelay = connectBaseDelay
	err := bootstrap.Retry(context.Background(), b, func() error {
		db, oerr := gorm.Open(mysql.New(mysql.Config{
			DSN:                       dsn,
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{})
		if oerr != nil {
			log.Printf("Failed to connect to database (try %d/%d): %v", b.Attempts()+1, connectAttempts, oerr)
			return oerr
		}
		DB = db
		return nil
	})
	if err != nil {
		panic(err)
	}

	DB.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Link{},
		&models.ClickLog{},
		&models.Plan{},
		&models.ProviderAccount{},
	)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
