package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hr-portal-svc/internal/config"
	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/pkg/logger"
)

// BillingService defines the interface for the periodic billing drivers.
// A driver returning (nil, nil) means there was no billable work for the
// client, which is a valid empty result, not an error.
type BillingService interface {
	BillEmployer(employerID uint, periodStart, periodEnd time.Time) (*models.Invoice, error)
	BillEORClient(clientID uint) (*models.Invoice, error)
	RunMonthlyBilling(periodStart, periodEnd time.Time) (*BillingRunResponse, error)
}

// BillingRunResponse summarizes one batch billing run across all clients
type BillingRunResponse struct {
	EmployersProcessed  int      `json:"employers_processed"`
	EORClientsProcessed int      `json:"eor_clients_processed"`
	InvoicesCreated     int      `json:"invoices_created"`
	SkippedNoWork       int      `json:"skipped_no_work"`
	FailedCount         int      `json:"failed_count"`
	Errors              []string `json:"errors,omitempty"`
}

// billingService implements BillingService
type billingService struct {
	invoiceService   InvoiceService
	timesheetRepo    repository.TimesheetRepository
	employerRepo     repository.EmployerRepository
	employeeRepo     repository.EmployeeRepository
	eorRepo          repository.EORRepository
	notificationRepo repository.NotificationRepository
	db               *gorm.DB
	logger           *logger.Logger

	defaultHourlyRate decimal.Decimal
	eorServiceFeePct  decimal.Decimal
	invoiceDueDays    int
	eorInvoiceDueDays int
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	invoiceService InvoiceService,
	timesheetRepo repository.TimesheetRepository,
	employerRepo repository.EmployerRepository,
	employeeRepo repository.EmployeeRepository,
	eorRepo repository.EORRepository,
	notificationRepo repository.NotificationRepository,
	db *gorm.DB,
	cfg *config.BillingConfig,
	logger *logger.Logger,
) (BillingService, error) {
	defaultRate, err := decimal.NewFromString(cfg.DefaultHourlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid default hourly rate %q: %w", cfg.DefaultHourlyRate, err)
	}
	feePct, err := decimal.NewFromString(cfg.EORServiceFeePct)
	if err != nil {
		return nil, fmt.Errorf("invalid EOR service fee percent %q: %w", cfg.EORServiceFeePct, err)
	}

	return &billingService{
		invoiceService:    invoiceService,
		timesheetRepo:     timesheetRepo,
		employerRepo:      employerRepo,
		employeeRepo:      employeeRepo,
		eorRepo:           eorRepo,
		notificationRepo:  notificationRepo,
		db:                db,
		logger:            logger,
		defaultHourlyRate: defaultRate,
		eorServiceFeePct:  feePct,
		invoiceDueDays:    cfg.InvoiceDueDays,
		eorInvoiceDueDays: cfg.EORInvoiceDueDays,
	}, nil
}

// employeeBillingGroup accumulates one employee's billable hours for a period
type employeeBillingGroup struct {
	employeeID   uint
	totalHours   decimal.Decimal
	hourlyRate   decimal.Decimal
	timesheetIDs []uint
}

// BillEmployer gathers approved, not yet invoiced timesheets for the
// employer in the inclusive period and creates one invoice with one line
// item per employee (quantity = summed hours including overtime). The
// invoice and the invoiced flags commit in a single transaction so a
// failure can neither double-bill nor silently consume timesheets.
func (s *billingService) BillEmployer(employerID uint, periodStart, periodEnd time.Time) (*models.Invoice, error) {
	employer, err := s.employerRepo.GetEmployerByID(employerID)
	if err != nil {
		return nil, fmt.Errorf("employer %d not found: %w", employerID, err)
	}

	timesheets, err := s.timesheetRepo.GetBillableTimesheets(employerID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load billable timesheets: %w", err)
	}
	if len(timesheets) == 0 {
		s.logger.WithFields(map[string]interface{}{
			"employer":     employer.CompanyName,
			"period_start": periodStart.Format("2006-01-02"),
			"period_end":   periodEnd.Format("2006-01-02"),
		}).Info("No billable hours for employer in period")
		return nil, nil
	}

	groups, err := s.groupTimesheetsByEmployee(timesheets)
	if err != nil {
		return nil, err
	}

	items := make([]LineItemInput, 0, len(groups))
	consumedIDs := make([]uint, 0, len(timesheets))
	for _, group := range groups {
		employee, err := s.employeeRepo.GetEmployeeByID(group.employeeID)
		if err != nil {
			return nil, fmt.Errorf("employee %d not found: %w", group.employeeID, err)
		}
		items = append(items, LineItemInput{
			Description: fmt.Sprintf("Work by %s", employee.FullName()),
			Quantity:    group.totalHours,
			UnitPrice:   group.hourlyRate,
		})
		consumedIDs = append(consumedIDs, group.timesheetIDs...)
	}

	issueDate := time.Now()
	dueDate := issueDate.AddDate(0, 0, s.invoiceDueDays)

	var invoice *models.Invoice
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		invoice, txErr = s.invoiceService.AssembleInvoice(tx, models.EmployerRef(employerID), issueDate, dueDate, items)
		if txErr != nil {
			return txErr
		}
		return s.timesheetRepo.MarkInvoiced(tx, consumedIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bill employer %s: %w", employer.CompanyName, err)
	}

	s.notifyInvoiceIssued(employer.UserID, invoice)

	if _, err := s.invoiceService.AttachDocument(invoice.ID); err != nil {
		// Invoice is committed; only the artifact is missing.
		return invoice, err
	}

	return invoice, nil
}

func (s *billingService) notifyInvoiceIssued(recipientID uint, invoice *models.Invoice) {
	notification := &models.Notification{
		RecipientID: recipientID,
		Message: fmt.Sprintf("Invoice %s for %s is due on %s",
			invoice.InvoiceNumber,
			invoice.TotalAmount().StringFixed(2),
			invoice.DueDate.Format("2006-01-02")),
		Type: models.NotificationInvoiceReminder,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		s.logger.WithError(err).Error("Failed to create invoice notification")
	}
}

// groupTimesheetsByEmployee folds timesheets into one billing group per
// employee, ordered by employee ID. The rate comes from the timesheet's
// assignment when one is contracted, otherwise the configured default.
func (s *billingService) groupTimesheetsByEmployee(timesheets []*models.Timesheet) ([]*employeeBillingGroup, error) {
	byEmployee := make(map[uint]*employeeBillingGroup)
	rateCache := make(map[uint]decimal.Decimal)

	for _, ts := range timesheets {
		rate := s.defaultHourlyRate
		if ts.AssignmentID != nil {
			cached, ok := rateCache[*ts.AssignmentID]
			if !ok {
				assignment, err := s.employerRepo.GetAssignmentByID(*ts.AssignmentID)
				if err != nil {
					return nil, fmt.Errorf("assignment %d not found: %w", *ts.AssignmentID, err)
				}
				cached = s.defaultHourlyRate
				if assignment.HourlyRate != nil {
					cached = *assignment.HourlyRate
				}
				rateCache[*ts.AssignmentID] = cached
			}
			rate = cached
		}

		group, ok := byEmployee[ts.EmployeeID]
		if !ok {
			group = &employeeBillingGroup{
				employeeID: ts.EmployeeID,
				totalHours: decimal.Zero,
				hourlyRate: rate,
			}
			byEmployee[ts.EmployeeID] = group
		}
		group.totalHours = group.totalHours.Add(ts.TotalHours())
		group.timesheetIDs = append(group.timesheetIDs, ts.ID)
	}

	groups := make([]*employeeBillingGroup, 0, len(byEmployee))
	for _, group := range byEmployee {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].employeeID < groups[j].employeeID
	})

	return groups, nil
}

// BillEORClient creates an invoice for an EOR client from its active
// placements: a gross salary passthrough line and a service fee line per
// placement.
func (s *billingService) BillEORClient(clientID uint) (*models.Invoice, error) {
	client, err := s.eorRepo.GetEORClientByID(clientID)
	if err != nil {
		return nil, fmt.Errorf("EOR client %d not found: %w", clientID, err)
	}

	placements, err := s.eorRepo.GetActivePlacements(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load placements: %w", err)
	}
	if len(placements) == 0 {
		s.logger.WithField("client", client.CompanyName).Info("No active placements for EOR client")
		return nil, nil
	}

	hundred := decimal.NewFromInt(100)
	items := make([]LineItemInput, 0, 2*len(placements))
	for _, placement := range placements {
		employee, err := s.employeeRepo.GetEmployeeByID(placement.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("employee %d not found: %w", placement.EmployeeID, err)
		}

		items = append(items, LineItemInput{
			Description: fmt.Sprintf("Gross Salary: %s", employee.FullName()),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   placement.GrossSalary,
		})
		items = append(items, LineItemInput{
			Description: fmt.Sprintf("EOR Service Fee: %s", employee.FullName()),
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   placement.GrossSalary.Mul(s.eorServiceFeePct).Div(hundred),
		})
	}

	issueDate := time.Now()
	dueDate := issueDate.AddDate(0, 0, s.eorInvoiceDueDays)

	var invoice *models.Invoice
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		invoice, txErr = s.invoiceService.AssembleInvoice(tx, models.EORClientRef(clientID), issueDate, dueDate, items)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bill EOR client %s: %w", client.CompanyName, err)
	}

	s.notifyInvoiceIssued(client.UserID, invoice)

	if _, err := s.invoiceService.AttachDocument(invoice.ID); err != nil {
		return invoice, err
	}

	return invoice, nil
}

// RunMonthlyBilling invokes both billing drivers for every employer and
// every EOR client. Per-client failures are collected, not fatal to the
// batch.
func (s *billingService) RunMonthlyBilling(periodStart, periodEnd time.Time) (*BillingRunResponse, error) {
	response := &BillingRunResponse{}

	employers, err := s.employerRepo.ListEmployers()
	if err != nil {
		return nil, fmt.Errorf("failed to list employers: %w", err)
	}
	for _, employer := range employers {
		response.EmployersProcessed++
		invoice, err := s.BillEmployer(employer.ID, periodStart, periodEnd)
		if err != nil && !errors.Is(err, ErrDocumentRender) {
			response.FailedCount++
			response.Errors = append(response.Errors, fmt.Sprintf("employer %d: %v", employer.ID, err))
			continue
		}
		if invoice == nil {
			response.SkippedNoWork++
			continue
		}
		response.InvoicesCreated++
		if err != nil {
			// Invoice exists but the PDF must be re-attached by an operator.
			response.Errors = append(response.Errors, fmt.Sprintf("employer %d: %v", employer.ID, err))
		}
	}

	clients, err := s.eorRepo.ListEORClients()
	if err != nil {
		return nil, fmt.Errorf("failed to list EOR clients: %w", err)
	}
	for _, client := range clients {
		response.EORClientsProcessed++
		invoice, err := s.BillEORClient(client.ID)
		if err != nil && !errors.Is(err, ErrDocumentRender) {
			response.FailedCount++
			response.Errors = append(response.Errors, fmt.Sprintf("eor client %d: %v", client.ID, err))
			continue
		}
		if invoice == nil {
			response.SkippedNoWork++
			continue
		}
		response.InvoicesCreated++
		if err != nil {
			response.Errors = append(response.Errors, fmt.Sprintf("eor client %d: %v", client.ID, err))
		}
	}

	return response, nil
}
