package repository

import (
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
)

// SchedulerLogRepository defines the interface for scheduler log operations
type SchedulerLogRepository interface {
	CreateSchedulerLog(entry *models.SchedulerLog) error
}

// schedulerLogRepository implements SchedulerLogRepository
type schedulerLogRepository struct {
	db *gorm.DB
}

// NewSchedulerLogRepository creates a new instance of SchedulerLogRepository
func NewSchedulerLogRepository(db *gorm.DB) SchedulerLogRepository {
	return &schedulerLogRepository{
		db: db,
	}
}

// CreateSchedulerLog inserts a scheduler log entry
func (r *schedulerLogRepository) CreateSchedulerLog(entry *models.SchedulerLog) error {
	return r.db.Create(entry).Error
}
