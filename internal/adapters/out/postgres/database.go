package postgres

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig selects and addresses the record store. SQLite serves
// single-operator deployments and tests.
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SslMode    string
	SQLitePath string
}

// DSN renders the connection string of the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		path := c.SQLitePath
		if path == "" || path == ":memory:" {
			path = ":memory:"
		}
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	}

	sslMode := c.SslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslMode)
}

// Open connects to the record store. Driver errors are translated by gorm so
// that foreign key violations surface as gorm.ErrForeignKeyViolated on both
// dialects.
func Open(cfg DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	gormLogger := logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	}

	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite serialises writers; one connection also keeps an in-memory
		// database alive for the lifetime of the pool.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	case DriverPostgres, "":
		return gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
