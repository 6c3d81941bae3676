package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Cutoff   CutoffConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// CutoffConfig holds the monthly payroll cutoff schedule and the
// escalation/reminder windows around it.
type CutoffConfig struct {
	DayOfMonth           int
	EscalationDaysBefore int
	ReminderDaysBefore   int
	NotifyManagers       bool
	OvertimeBonusHours   int
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "cmlabs-payroll-exceptions"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	cutoffDay, err := strconv.Atoi(getEnv("PAYROLL_CUTOFF_DAY", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_CUTOFF_DAY: %w", err)
	}

	escalationDays, err := strconv.Atoi(getEnv("ESCALATION_DAYS_BEFORE_CUTOFF", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid ESCALATION_DAYS_BEFORE_CUTOFF: %w", err)
	}

	reminderDays, err := strconv.Atoi(getEnv("REMINDER_DAYS_BEFORE_CUTOFF", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_DAYS_BEFORE_CUTOFF: %w", err)
	}

	overtimeBonusHours, err := strconv.Atoi(getEnv("OVERTIME_BONUS_HOURS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid OVERTIME_BONUS_HOURS: %w", err)
	}

	config.Cutoff = CutoffConfig{
		DayOfMonth:           cutoffDay,
		EscalationDaysBefore: escalationDays,
		ReminderDaysBefore:   reminderDays,
		NotifyManagers:       getEnv("NOTIFY_MANAGERS_ON_ESCALATION", "true") == "true",
		OvertimeBonusHours:   overtimeBonusHours,
	}

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
	if c.Cutoff.DayOfMonth < 1 || c.Cutoff.DayOfMonth > 31 {
		return fmt.Errorf("PAYROLL_CUTOFF_DAY must be between 1 and 31")
	}
	if c.Cutoff.EscalationDaysBefore < 0 {
		return fmt.Errorf("ESCALATION_DAYS_BEFORE_CUTOFF must not be negative")
	}
	if c.Cutoff.ReminderDaysBefore < 0 {
		return fmt.Errorf("REMINDER_DAYS_BEFORE_CUTOFF must not be negative")
	}
	return nil
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
