package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries the runtime settings read from the environment. The tax
// rate is deployment configuration, not business logic: 5% matches the
// observed deployment but any rate can be set via TAX_RATE.
type Config struct {
	Port              string
	TaxRate           float64
	GuestPollInterval time.Duration
	StaffPollInterval time.Duration
}

func Load() Config {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		TaxRate:           0.05,
		GuestPollInterval: 5 * time.Second,
		StaffPollInterval: 10 * time.Second,
	}

	if v := os.Getenv("TAX_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil && rate >= 0 {
			cfg.TaxRate = rate
		}
	}
	if v := os.Getenv("GUEST_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.GuestPollInterval = d
		}
	}
	if v := os.Getenv("STAFF_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.StaffPollInterval = d
		}
	}
	return cfg
}

// InitDB opens the database connection. MySQL in production; set
// DB_DRIVER=sqlite for a local file database during development.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		return gorm.Open(sqlite.Open(getEnv("DB_NAME", "qr_menu.db")), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		getEnv("DB_USER", "root"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_HOST", "127.0.0.1"),
		getEnv("DB_PORT", "3306"),
		getEnv("DB_NAME", "qr_menu"),
	)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
