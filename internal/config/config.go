package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the named attendance policy parameters and the
// sweep cadence.
type AttendanceConfig struct {
	Timezone        string
	LateThreshold   string // HH:MM on the organizational clock
	AutoCloseCutoff string // HH:MM on the organizational clock
	SweepInterval   time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendly"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy configuration
	sweepInterval, err := time.ParseDuration(getEnv("ATTENDANCE_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_SWEEP_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Timezone:        getEnv("ORG_TIMEZONE", "UTC"),
		LateThreshold:   getEnv("ATTENDANCE_LATE_THRESHOLD", "09:00"),
		AutoCloseCutoff: getEnv("ATTENDANCE_AUTO_CLOSE_CUTOFF", "19:30"),
		SweepInterval:   sweepInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.SweepInterval <= 0 {
		return fmt.Errorf("ATTENDANCE_SWEEP_INTERVAL must be positive")
	}
	return nil
}

// AttendancePolicy builds the domain policy from the configured parameters.
func (c *Config) AttendancePolicy() (attendance.Policy, error) {
	loc, err := time.LoadLocation(c.Attendance.Timezone)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid ORG_TIMEZONE: %w", err)
	}

	late, err := attendance.ParseClockTime(c.Attendance.LateThreshold)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid ATTENDANCE_LATE_THRESHOLD: %w", err)
	}

	cutoff, err := attendance.ParseClockTime(c.Attendance.AutoCloseCutoff)
	if err != nil {
		return attendance.Policy{}, fmt.Errorf("invalid ATTENDANCE_AUTO_CLOSE_CUTOFF: %w", err)
	}

	return attendance.Policy{
		LateThreshold:   late,
		AutoCloseCutoff: cutoff,
		Location:        loc,
	}, nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
