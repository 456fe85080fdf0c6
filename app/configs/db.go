package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

func OpenConnection(env ENV) (*gorm.DB, error) {

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.DBUser,
		env.DBPassword,
		env.DBHost,
		env.DBPort,
		env.DBName,
	)

	gormConfig := &gorm.Config{}
	if env.IsProduction() {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		zap.S().Infof("Attempting to connect to database %s@%s:%s (Attempt %d/%d)", env.DBName, env.DBHost, env.DBPort, i+1, maxRetries)
		db, err := gorm.Open(mysql.Open(dsn), gormConfig)
		if err == nil {

			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetMaxOpenConns(50)
					sqlDB.SetConnMaxLifetime(time.Hour)
					zap.S().Info("Database connection successful")
					return db, nil
				}
			}

			lastErr = pingErr
			zap.S().Warnf("Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			zap.S().Warnf("Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
