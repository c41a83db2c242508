package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ArmsDealer/internal/shared/logs"
	"ArmsDealer/internal/shared/simconfig"
	"ArmsDealer/modules/kit/errx"
)

// DSN username:password@protocol(address)/dbname?charset=utf8mb4&parseTime=True&loc=Local
func DSN(cfg simconfig.MySQLConfig) string {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
	)
}

func Open(cfg simconfig.MySQLConfig) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.ShowSQL {
		level = logger.Info
	}
	gcfg := &gorm.Config{
		Logger: logs.NewGormLogger(level, 200*time.Millisecond),
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), gcfg)
	if err != nil {
		return nil, errx.ErrUnavailable.WithData("store", "mysql").WithCause(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errx.ErrUnavailable.WithData("store", "mysql").WithCause(err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}

	logs.Info("open db success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}
