package db

import (
	"time"

	"loanlink-backend/internal/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func OpenGorm(dsn string, dev bool) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn), dev)
}

// OpenGormWithDialector opens, tunes the pool and pings. Unique-key
// violations surface as gorm.ErrDuplicatedKey.
func OpenGormWithDialector(dial gorm.Dialector, dev bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if dev {
		level = gormlogger.Info
	}
	cfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	logger.Info("gorm: connected")
	return db, nil
}
