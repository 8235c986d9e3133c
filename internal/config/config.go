package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
)

// Драйверы хранилища снапшотов
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config содержит настройки приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Staffing StaffingConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string `env:"SERVER_PORT" envDefault:"8080"`
}

// DatabaseConfig - настройки хранилища снапшотов
type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" envDefault:"file"`
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT" envDefault:"5432"`
	User         string `env:"DB_USER" envDefault:"postgres"`
	Password     string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName       string `env:"DB_NAME" envDefault:"staffing"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath   string `env:"DB_SQLITE_PATH" envDefault:"staffing.db"`
	SnapshotPath string `env:"SNAPSHOT_PATH" envDefault:"company_data.json"`
}

// StaffingConfig - параметры предметной области
type StaffingConfig struct {
	CompanyName           string          `env:"COMPANY_NAME" envDefault:"New Company"`
	MaxConcurrentProjects int             `env:"STAFFING_MAX_CONCURRENT_PROJECTS" envDefault:"3"`
	OverloadThreshold     int             `env:"STAFFING_OVERLOAD_THRESHOLD" envDefault:"2"`
	SalaryCeiling         decimal.Decimal `env:"STAFFING_SALARY_CEILING" envDefault:"1000000"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverFile, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q, use file, sqlite or postgres", c.Database.Driver)
	}
	if c.Staffing.MaxConcurrentProjects <= 0 {
		return fmt.Errorf("STAFFING_MAX_CONCURRENT_PROJECTS must be positive, got %d", c.Staffing.MaxConcurrentProjects)
	}
	if c.Staffing.OverloadThreshold < 0 {
		return fmt.Errorf("STAFFING_OVERLOAD_THRESHOLD must not be negative, got %d", c.Staffing.OverloadThreshold)
	}
	if !c.Staffing.SalaryCeiling.IsPositive() {
		return fmt.Errorf("STAFFING_SALARY_CEILING must be positive, got %s", c.Staffing.SalaryCeiling)
	}
	return nil
}
