package db

import (
	"fmt"
	stdlog "log"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/project"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

func OpenGorm(driver, dsn string, zl zerolog.Logger) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := OpenGormWithDialector(dial, zl)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// sqlite allows one writer; a single connection keeps transactions queued instead of failing with SQLITE_BUSY
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func OpenGormWithDialector(dial gorm.Dialector, zl zerolog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(stdlog.New(zl, "", 0), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
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
	zl.Info().Str("dialect", dial.Name()).Msg("gorm: connected")
	return db, nil
}

// Migrate creates or updates the charity_projects and donations tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&project.CharityProject{}, &donation.Donation{}); err != nil {
		return err
	}
	return binaryProjectNames(db)
}

// binaryProjectNames gives charity_projects.name a binary collation on MySQL so
// the unique index compares names case-sensitively. sqlite already does.
func binaryProjectNames(db *gorm.DB) error {
	if db.Dialector.Name() != DriverMySQL {
		return nil
	}
	return db.Exec("ALTER TABLE charity_projects MODIFY name VARCHAR(100) NOT NULL COLLATE utf8mb4_bin").Error
}
