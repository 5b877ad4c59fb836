package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server ServerConfig

	// Relational store (MySQL via GORM)
	Database DatabaseConfig

	// Blob store (MongoDB GridFS)
	Mongo MongoConfig

	Auth AuthConfig

	Logging LoggingConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	Environment  string // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string
	Port         string
	Username     string
	Password     string
	DatabaseName string
	MaxOpenConns int
	MaxIdleConns int
}

// MongoConfig contains blob storage configuration
type MongoConfig struct {
	URI      string
	Database string
	// Base URL prepended to storage keys when building public media URLs
	PublicBaseURL string
}

// AuthConfig contains token issuing configuration
type AuthConfig struct {
	JWTSecret string
	// Token lifetime in hours
	TokenTTL int
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load reads configuration from environment variables. Callers load .env
// into the environment first (godotenv in cmd).
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getenv("SERVER_HOST", ""),
			Port:         getenv("SERVER_PORT", "8080"),
			ReadTimeout:  getenvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getenvInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getenv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:         getenv("MYSQL_HOST", "localhost"),
			Port:         getenv("MYSQL_PORT", "3306"),
			Username:     getenv("MYSQL_USER", "root"),
			Password:     getenv("MYSQL_PASSWORD", ""),
			DatabaseName: getenv("MYSQL_DATABASE", "connectrealm"),
			MaxOpenConns: getenvInt("MYSQL_MAX_OPEN_CONNS", 50),
			MaxIdleConns: getenvInt("MYSQL_MAX_IDLE_CONNS", 10),
		},
		Mongo: MongoConfig{
			URI:           getenv("MONGO_URI", "mongodb://localhost:27017"),
			Database:      getenv("MONGO_DATABASE", "connectrealm_media"),
			PublicBaseURL: getenv("MEDIA_BASE_URL", "http://localhost:8081/media/"),
		},
		Auth: AuthConfig{
			JWTSecret: getenv("JWT_SECRET", ""),
			TokenTTL:  getenvInt("JWT_TTL_HOURS", 24),
		},
		Logging: LoggingConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "console"),
		},
	}
}

// DSN builds the MySQL connection string
func (cfg *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
