package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Scheduler SchedulerConfig
	Billing   BillingConfig
	Payroll   PayrollConfig
	Storage   StorageConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level  string
	Format string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins string
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	BillingCronExpression string
	OverdueCronExpression string
}

// BillingConfig holds invoicing defaults
type BillingConfig struct {
	DefaultHourlyRate string
	EORServiceFeePct  string
	InvoiceDueDays    int
	EORInvoiceDueDays int
}

// PayrollConfig holds payslip calculation defaults
type PayrollConfig struct {
	RegularHourlyRate  string
	OvertimeHourlyRate string
	TaxRatePct         string
	InsuranceDeduction string
}

// StorageConfig holds file storage configuration
type StorageConfig struct {
	BaseDir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if .env file doesn't exist
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "hrportal"),
			Password: getEnv("DB_PASSWORD", "secret"),
			DBName:   getEnv("DB_NAME", "hrportal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"),
		},
		Scheduler: SchedulerConfig{
			// Cron format with seconds: "seconds minutes hours day-of-month month day-of-week"
			BillingCronExpression: getEnv("BILLING_CRON_EXPRESSION", "0 0 2 1 * *"),
			OverdueCronExpression: getEnv("OVERDUE_CRON_EXPRESSION", "0 0 3 * * *"),
		},
		Billing: BillingConfig{
			DefaultHourlyRate: getEnv("BILLING_DEFAULT_HOURLY_RATE", "50.00"),
			EORServiceFeePct:  getEnv("BILLING_EOR_SERVICE_FEE_PCT", "10"),
			InvoiceDueDays:    getEnvAsInt("BILLING_INVOICE_DUE_DAYS", 30),
			EORInvoiceDueDays: getEnvAsInt("BILLING_EOR_INVOICE_DUE_DAYS", 15),
		},
		Payroll: PayrollConfig{
			RegularHourlyRate:  getEnv("PAYROLL_REGULAR_HOURLY_RATE", "20.00"),
			OvertimeHourlyRate: getEnv("PAYROLL_OVERTIME_HOURLY_RATE", "30.00"),
			TaxRatePct:         getEnv("PAYROLL_TAX_RATE_PCT", "20"),
			InsuranceDeduction: getEnv("PAYROLL_INSURANCE_DEDUCTION", "50.00"),
		},
		Storage: StorageConfig{
			BaseDir: getEnv("STORAGE_BASE_DIR", "tmp/uploads"),
		},
	}

	return config, nil
}

// GetDSN returns PostgreSQL connection string
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
