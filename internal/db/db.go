package db

import (
	"time"

	"github.com/avast/retry-go/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bookcatalog/internal/config"
	"bookcatalog/pkg/logger"
)

const (
	defaultMaxAttempts     = 10
	defaultDelayBetweenTry = 2 * time.Second
)

// ConnectWithRetry opens the database handle, retrying while the store
// comes up. Returns the handle or the last error once attempts run out.
func ConnectWithRetry(cfg *config.Config) (*gorm.DB, error) {
	var db *gorm.DB

	err := retry.Do(
		func() error {
			var err error
			db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
			if err != nil {
				return err
			}

			sqlDB, err := db.DB()
			if err != nil {
				return err
			}

			return sqlDB.Ping()
		},
		retry.Attempts(defaultMaxAttempts),
		retry.Delay(defaultDelayBetweenTry),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Sugar.Warnf("db not ready (attempt %d/%d): %v", n+1, defaultMaxAttempts, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
