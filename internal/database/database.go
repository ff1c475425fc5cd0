package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hr-portal-svc/internal/config"
	"hr-portal-svc/internal/models"
)

// Database wraps the gorm connection
type Database struct {
	DB *gorm.DB
}

// NewDatabase opens a PostgreSQL connection using the given configuration
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db}, nil
}

// AutoMigrate creates or updates the schema for all models
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.User{},
		&models.EmployerProfile{},
		&models.JobPosting{},
		&models.Application{},
		&models.Assignment{},
		&models.EmployeeProfile{},
		&models.WorkSchedule{},
		&models.Timesheet{},
		&models.Payslip{},
		&models.EORClientProfile{},
		&models.EORAgreement{},
		&models.EORPlacement{},
		&models.PayrollRun{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.InvoiceSequence{},
		&models.Payment{},
		&models.Notification{},
		&models.SchedulerLog{},
	)
}

// Close closes the underlying database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
