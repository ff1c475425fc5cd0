package service

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hr-portal-svc/internal/config"
	"hr-portal-svc/internal/models"
	"hr-portal-svc/internal/pdf"
	"hr-portal-svc/internal/repository"
	"hr-portal-svc/internal/storage"
	"hr-portal-svc/pkg/logger"
)

// PayrollService defines the interface for payslip and payroll operations.
// Like the billing drivers, (nil, nil) means no work in the period.
type PayrollService interface {
	GeneratePayslip(employeeID uint, periodStart, periodEnd time.Time) (*models.Payslip, error)
	RunPayroll(eorClientID uint, periodStart, periodEnd time.Time) (*models.PayrollRun, error)
	ListPayslips(employeeID uint) ([]*models.Payslip, error)
}

// payrollService implements PayrollService
type payrollService struct {
	employeeRepo     repository.EmployeeRepository
	timesheetRepo    repository.TimesheetRepository
	eorRepo          repository.EORRepository
	notificationRepo repository.NotificationRepository
	renderer         pdf.Renderer
	files            storage.FileStore
	db               *gorm.DB
	logger           *logger.Logger

	regularRate        decimal.Decimal
	overtimeRate       decimal.Decimal
	taxRatePct         decimal.Decimal
	insuranceDeduction decimal.Decimal
}

// NewPayrollService creates a new instance of PayrollService
func NewPayrollService(
	employeeRepo repository.EmployeeRepository,
	timesheetRepo repository.TimesheetRepository,
	eorRepo repository.EORRepository,
	notificationRepo repository.NotificationRepository,
	renderer pdf.Renderer,
	files storage.FileStore,
	db *gorm.DB,
	cfg *config.PayrollConfig,
	logger *logger.Logger,
) (PayrollService, error) {
	regularRate, err := decimal.NewFromString(cfg.RegularHourlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid regular hourly rate %q: %w", cfg.RegularHourlyRate, err)
	}
	overtimeRate, err := decimal.NewFromString(cfg.OvertimeHourlyRate)
	if err != nil {
		return nil, fmt.Errorf("invalid overtime hourly rate %q: %w", cfg.OvertimeHourlyRate, err)
	}
	taxRatePct, err := decimal.NewFromString(cfg.TaxRatePct)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate percent %q: %w", cfg.TaxRatePct, err)
	}
	insurance, err := decimal.NewFromString(cfg.InsuranceDeduction)
	if err != nil {
		return nil, fmt.Errorf("invalid insurance deduction %q: %w", cfg.InsuranceDeduction, err)
	}

	return &payrollService{
		employeeRepo:       employeeRepo,
		timesheetRepo:      timesheetRepo,
		eorRepo:            eorRepo,
		notificationRepo:   notificationRepo,
		renderer:           renderer,
		files:              files,
		db:                 db,
		logger:             logger,
		regularRate:        regularRate,
		overtimeRate:       overtimeRate,
		taxRatePct:         taxRatePct,
		insuranceDeduction: insurance,
	}, nil
}

// deductions computes tax and fixed deductions for a gross amount.
// TODO: replace the flat tax percentage with a bracket table once the
// payroll jurisdictions are known.
func (s *payrollService) deductions(gross decimal.Decimal) (net, tax decimal.Decimal, breakdown string) {
	tax = gross.Mul(s.taxRatePct).Div(decimal.NewFromInt(100))
	net = gross.Sub(tax).Sub(s.insuranceDeduction)

	b, _ := json.Marshal(map[string]string{
		"tax":       tax.StringFixed(2),
		"insurance": s.insuranceDeduction.StringFixed(2),
	})
	return net, tax, string(b)
}

// GeneratePayslip builds a payslip from the employee's approved timesheets
// in the inclusive period. Regular and overtime hours are paid at the
// configured rates.
func (s *payrollService) GeneratePayslip(employeeID uint, periodStart, periodEnd time.Time) (*models.Payslip, error) {
	employee, err := s.employeeRepo.GetEmployeeByID(employeeID)
	if err != nil {
		return nil, fmt.Errorf("employee %d not found: %w", employeeID, err)
	}

	timesheets, err := s.timesheetRepo.GetApprovedTimesheets(employeeID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved timesheets: %w", err)
	}
	if len(timesheets) == 0 {
		return nil, nil
	}

	totalRegular := decimal.Zero
	totalOvertime := decimal.Zero
	for _, ts := range timesheets {
		totalRegular = totalRegular.Add(ts.HoursWorked)
		totalOvertime = totalOvertime.Add(ts.OvertimeHours)
	}

	gross := totalRegular.Mul(s.regularRate).Add(totalOvertime.Mul(s.overtimeRate))
	net, tax, breakdown := s.deductions(gross)

	payslip := &models.Payslip{
		EmployeeID:      employeeID,
		PeriodStartDate: periodStart,
		PeriodEndDate:   periodEnd,
		IssueDate:       time.Now(),
		GrossSalary:     gross,
		NetSalary:       net,
		TaxAmount:       tax,
		DeductionsJSON:  breakdown,
	}
	if err := s.employeeRepo.CreatePayslip(s.db, payslip); err != nil {
		return nil, fmt.Errorf("failed to create payslip: %w", err)
	}

	if err := s.attachPayslipDocument(payslip, employee); err != nil {
		s.logger.WithError(err).WithField("payslip_id", payslip.ID).Error("Payslip committed but document rendering failed")
		return payslip, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	s.notifyPayslipReady(employee, payslip)

	return payslip, nil
}

func (s *payrollService) attachPayslipDocument(payslip *models.Payslip, employee *models.EmployeeProfile) error {
	content, err := s.renderer.RenderPayslip(payslip, employee.FullName())
	if err != nil {
		return err
	}

	relPath := fmt.Sprintf("payslips/Payslip-%d-%s.pdf", payslip.EmployeeID, payslip.PeriodStartDate.Format("2006-01-02"))
	path, err := s.files.Save(relPath, content)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.UpdatePayslipFilePath(payslip.ID, path); err != nil {
		return err
	}
	payslip.FilePath = &path

	return nil
}

func (s *payrollService) notifyPayslipReady(employee *models.EmployeeProfile, payslip *models.Payslip) {
	notification := &models.Notification{
		RecipientID: employee.UserID,
		Message: fmt.Sprintf("Your payslip for %s to %s is ready",
			payslip.PeriodStartDate.Format("2006-01-02"),
			payslip.PeriodEndDate.Format("2006-01-02")),
		Type: models.NotificationPayslipReady,
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		s.logger.WithError(err).Error("Failed to create payslip notification")
	}
}

// bankTransferExport is the XML document handed to the bank integration
type bankTransferExport struct {
	XMLName   xml.Name            `xml:"PayrollExport"`
	ClientID  uint                `xml:"client-id,attr"`
	Period    string              `xml:"period,attr"`
	Transfers []bankTransferEntry `xml:"Transfer"`
}

type bankTransferEntry struct {
	Employee string `xml:"employee"`
	Gross    string `xml:"gross"`
	Tax      string `xml:"tax"`
	Net      string `xml:"net"`
}

// RunPayroll processes a payroll run for an EOR client over the inclusive
// period: one payslip per active placement from the placement's monthly
// gross salary, aggregated totals on the run, plus an XML bank export. The
// run and its payslips commit in one transaction.
func (s *payrollService) RunPayroll(eorClientID uint, periodStart, periodEnd time.Time) (*models.PayrollRun, error) {
	if _, err := s.eorRepo.GetEORClientByID(eorClientID); err != nil {
		return nil, fmt.Errorf("EOR client %d not found: %w", eorClientID, err)
	}

	placements, err := s.eorRepo.GetActivePlacements(eorClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load placements: %w", err)
	}
	if len(placements) == 0 {
		return nil, nil
	}

	run := &models.PayrollRun{
		EORClientID:     eorClientID,
		PeriodStartDate: periodStart,
		PeriodEndDate:   periodEnd,
		TotalGrossPayout: decimal.Zero,
		TotalNetPayout:  decimal.Zero,
		TotalTaxes:      decimal.Zero,
		Status:          models.PayrollRunProcessed,
	}

	export := &bankTransferExport{
		ClientID: eorClientID,
		Period:   fmt.Sprintf("%s/%s", periodStart.Format("2006-01-02"), periodEnd.Format("2006-01-02")),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.eorRepo.CreatePayrollRun(tx, run); err != nil {
			return fmt.Errorf("failed to create payroll run: %w", err)
		}

		for _, placement := range placements {
			employee, err := s.employeeRepo.GetEmployeeByID(placement.EmployeeID)
			if err != nil {
				return fmt.Errorf("employee %d not found: %w", placement.EmployeeID, err)
			}

			gross := placement.GrossSalary
			net, tax, breakdown := s.deductions(gross)

			payslip := &models.Payslip{
				EmployeeID:      placement.EmployeeID,
				PayrollRunID:    &run.ID,
				PeriodStartDate: periodStart,
				PeriodEndDate:   periodEnd,
				IssueDate:       time.Now(),
				GrossSalary:     gross,
				NetSalary:       net,
				TaxAmount:       tax,
				DeductionsJSON:  breakdown,
			}
			if err := s.employeeRepo.CreatePayslip(tx, payslip); err != nil {
				return fmt.Errorf("failed to create payslip for employee %d: %w", placement.EmployeeID, err)
			}

			run.TotalGrossPayout = run.TotalGrossPayout.Add(gross)
			run.TotalNetPayout = run.TotalNetPayout.Add(net)
			run.TotalTaxes = run.TotalTaxes.Add(tax)

			export.Transfers = append(export.Transfers, bankTransferEntry{
				Employee: employee.FullName(),
				Gross:    gross.StringFixed(2),
				Tax:      tax.StringFixed(2),
				Net:      net.StringFixed(2),
			})
		}

		return tx.Model(&models.PayrollRun{}).
			Where("id = ?", run.ID).
			Updates(map[string]interface{}{
				"total_gross_payout": run.TotalGrossPayout,
				"total_net_payout":   run.TotalNetPayout,
				"total_taxes":        run.TotalTaxes,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.attachPayrollExport(run, export); err != nil {
		s.logger.WithError(err).WithField("payroll_run_id", run.ID).Error("Payroll run committed but XML export failed")
		return run, fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}

	return run, nil
}

func (s *payrollService) attachPayrollExport(run *models.PayrollRun, export *bankTransferExport) error {
	content, err := xml.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	relPath := fmt.Sprintf("payroll_exports/PayrollRun-%d.xml", run.ID)
	path, err := s.files.Save(relPath, append([]byte(xml.Header), content...))
	if err != nil {
		return err
	}

	run.XMLExportPath = &path
	return s.eorRepo.UpdatePayrollRun(run)
}

// ListPayslips retrieves all payslips for an employee
func (s *payrollService) ListPayslips(employeeID uint) ([]*models.Payslip, error) {
	return s.employeeRepo.ListPayslipsByEmployee(employeeID)
}
