package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/internal/service"
	"hr-portal-svc/pkg/logger"
)

// BillingScheduler runs the periodic billing jobs: the monthly billing run
// for all clients and the daily overdue invoice sweep.
type BillingScheduler struct {
	billingService   service.BillingService
	invoiceService   service.InvoiceService
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	billingCronExpr  string
	overdueCronExpr  string
}

// NewBillingScheduler creates a new billing scheduler
func NewBillingScheduler(
	billingService service.BillingService,
	invoiceService service.InvoiceService,
	schedulerLogRepo repository.SchedulerLogRepository,
	logger *logger.Logger,
	billingCronExpr, overdueCronExpr string,
) *BillingScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &BillingScheduler{
		billingService:   billingService,
		invoiceService:   invoiceService,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		billingCronExpr:  billingCronExpr,
		overdueCronExpr:  overdueCronExpr,
	}
}

// Start initializes and starts all scheduled jobs
func (s *BillingScheduler) Start() error {
	s.logger.Info("Starting billing scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.billingCronExpr).Info("Scheduling monthly billing job")
	if _, err := s.cron.AddFunc(s.billingCronExpr, s.runMonthlyBilling); err != nil {
		return fmt.Errorf("failed to schedule monthly billing job: %w", err)
	}

	s.logger.WithField("cron_expression", s.overdueCronExpr).Info("Scheduling overdue invoice job")
	if _, err := s.cron.AddFunc(s.overdueCronExpr, s.markOverdueInvoices); err != nil {
		return fmt.Errorf("failed to schedule overdue invoice job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Billing scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *BillingScheduler) Stop() {
	s.logger.Info("Stopping billing scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Billing scheduler stopped successfully")
}

// runMonthlyBilling bills all employers and EOR clients for the previous
// calendar month
func (s *BillingScheduler) runMonthlyBilling() {
	jobCode := "MONTHLY_BILLING_RUN"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(jobCode, docID, "Starting scheduled monthly billing run", "START", &now)

	s.logger.Info("Starting scheduled monthly billing run...")

	// The job fires on the first of the month and bills the month that just
	// ended.
	periodEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	periodStart := time.Date(periodEnd.Year(), periodEnd.Month(), 1, 0, 0, 0, 0, time.UTC)

	runningMessage := fmt.Sprintf("Billing all clients for period %s to %s",
		periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02"))
	s.logScheduler(jobCode, docID, runningMessage, "RUNNING", &now)

	response, err := s.billingService.RunMonthlyBilling(periodStart, periodEnd)
	if err != nil {
		failedMessage := fmt.Sprintf("Failed to run monthly billing: %v", err)
		s.logScheduler(jobCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithField("error", err).Error("Failed to run monthly billing")
		return
	}

	responseJSON, _ := json.Marshal(response)
	successMessage := fmt.Sprintf("Monthly billing run completed: %s", string(responseJSON))
	s.logScheduler(jobCode, docID, successMessage, "SUCCESS", &now)

	s.logger.WithField("response", response).Info("Monthly billing run completed")
}

// markOverdueInvoices flips pending invoices past their due date to OVERDUE
func (s *BillingScheduler) markOverdueInvoices() {
	jobCode := "OVERDUE_INVOICE_SWEEP"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(jobCode, docID, "Starting overdue invoice sweep", "START", &now)

	count, err := s.invoiceService.MarkOverdueInvoices()
	if err != nil {
		failedMessage := fmt.Sprintf("Failed to mark overdue invoices: %v", err)
		s.logScheduler(jobCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithField("error", err).Error("Failed to mark overdue invoices")
		return
	}

	successMessage := fmt.Sprintf("Marked %d invoices overdue", count)
	s.logScheduler(jobCode, docID, successMessage, "SUCCESS", &now)

	s.logger.WithField("count", count).Info("Overdue invoice sweep completed")
}

// logScheduler creates a new log entry in the database
func (s *BillingScheduler) logScheduler(jobCode, documentID, message, status string, createdAt *time.Time) {
	logEntry := &models.SchedulerLog{
		DocumentID: &documentID,
		JobCode:    &jobCode,
		Message:    &message,
		Status:     &status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	if err := s.schedulerLogRepo.CreateSchedulerLog(logEntry); err != nil {
		s.logger.WithField("error", err).WithField("status", status).Error("Failed to create scheduler log entry")
	} else {
		s.logger.WithField("status", status).WithField("document_id", documentID).Info("Scheduler log entry created")
	}
}
