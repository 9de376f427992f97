package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vegmart/vegmart/config"
)

// getDatabase opens the configured database. Postgres is the production
// engine; sqlite keeps development setups self-contained under workdir.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	switch cfg.Type {
	case "sqlite":
		dbpath := filepath.Join(workdir, "data", cfg.Name+".db")
		db, err = gorm.Open(sqlite.Open(dbpath), gormCfg)
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name, time.Local.String())
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	}
	if err != nil {
		zap.S().Panicf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if cfg.MaxConn > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxConn)
		}
		if cfg.IdleConn > 0 {
			sqlDB.SetMaxIdleConns(cfg.IdleConn)
		}
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	return db
}
