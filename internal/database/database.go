package database

import (
	"fmt"
	"log"
	"os"
	"strings"

	"creator-pulse/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DefaultConfig returns the local-development connection settings
func DefaultConfig() *Config {
	return &Config{
		Host:    "localhost",
		Port:    "5432",
		User:    "postgres",
		DBName:  "creator_pulse",
		SSLMode: "disable",
	}
}

// LoadConfig overlays environment variables on the defaults
func LoadConfig() *Config {
	config := DefaultConfig()

	overlay(&config.Host, "DB_HOST")
	overlay(&config.Port, "DB_PORT")
	overlay(&config.User, "DB_USER")
	overlay(&config.Password, "DB_PASSWORD")
	overlay(&config.DBName, "DB_NAME")
	overlay(&config.SSLMode, "DB_SSLMODE")

	return config
}

// DSN renders the config as a libpq connection string. The password is
// omitted entirely when empty so peer auth still works.
func (c *Config) DSN() string {
	parts := []string{
		"host=" + c.Host,
		"port=" + c.Port,
		"user=" + c.User,
	}
	if c.Password != "" {
		parts = append(parts, "password="+c.Password)
	}
	parts = append(parts, "dbname="+c.DBName, "sslmode="+c.SSLMode)
	return strings.Join(parts, " ")
}

// Connect establishes a connection to the PostgreSQL database
func Connect(config *Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(config.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("🗄️  Connected to %s on %s:%s", config.DBName, config.Host, config.Port)
	return nil
}

// Migrate runs database migrations
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database connection not established")
	}

	if err := models.AutoMigrate(DB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// overlay replaces dst with the named environment variable when set
func overlay(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}
