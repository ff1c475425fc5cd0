package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hr-portal-svc/internal/config"
	"hr-portal-svc/internal/models"
)

func testPayrollConfig() *config.PayrollConfig {
	return &config.PayrollConfig{
		RegularHourlyRate:  "20.00",
		OvertimeHourlyRate: "30.00",
		TaxRatePct:         "20",
		InsuranceDeduction: "50.00",
	}
}

func newTestPayrollService(t *testing.T) (*payrollService, *mockEmployeeRepository, *mockTimesheetRepository, *mockEORRepository, *mockNotificationRepository, *mockRenderer, *mockFileStore) {
	t.Helper()

	employeeRepo := newMockEmployeeRepository()
	timesheetRepo := newMockTimesheetRepository()
	eorRepo := newMockEORRepository()
	notificationRepo := &mockNotificationRepository{}
	renderer := &mockRenderer{Content: []byte("%PDF-1.4")}
	files := newMockFileStore()

	svc, err := NewPayrollService(employeeRepo, timesheetRepo, eorRepo, notificationRepo, renderer, files, nil, testPayrollConfig(), testLogger())
	assert.NoError(t, err)

	return svc.(*payrollService), employeeRepo, timesheetRepo, eorRepo, notificationRepo, renderer, files
}

func TestNewPayrollServiceInvalidTaxRate(t *testing.T) {
	cfg := testPayrollConfig()
	cfg.TaxRatePct = "twenty"

	svc, err := NewPayrollService(nil, nil, nil, nil, nil, nil, nil, cfg, testLogger())

	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestDeductions(t *testing.T) {
	svc, _, _, _, _, _, _ := newTestPayrollService(t)

	net, tax, breakdown := svc.deductions(decimal.RequireFromString("1000.00"))

	assert.Equal(t, "200.00", tax.StringFixed(2))
	assert.Equal(t, "750.00", net.StringFixed(2))

	var parsed map[string]string
	assert.NoError(t, json.Unmarshal([]byte(breakdown), &parsed))
	assert.Equal(t, "200.00", parsed["tax"])
	assert.Equal(t, "50.00", parsed["insurance"])
}

func TestGeneratePayslipUnknownEmployee(t *testing.T) {
	svc, _, _, _, _, _, _ := newTestPayrollService(t)

	payslip, err := svc.GeneratePayslip(99, time.Now(), time.Now())

	assert.Error(t, err)
	assert.Nil(t, payslip)
}

func TestGeneratePayslipNoApprovedTimesheets(t *testing.T) {
	svc, employeeRepo, _, _, _, _, _ := newTestPayrollService(t)
	employeeRepo.Employees[1] = &models.EmployeeProfile{ID: 1, UserID: 11, FirstName: "Mari", LastName: "Tamm"}

	payslip, err := svc.GeneratePayslip(1, time.Now().AddDate(0, -1, 0), time.Now())

	// Nothing worked means nothing owed, not a failure.
	assert.NoError(t, err)
	assert.Nil(t, payslip)
	assert.Empty(t, employeeRepo.Payslips)
}

func TestGeneratePayslip(t *testing.T) {
	svc, employeeRepo, timesheetRepo, _, notificationRepo, _, files := newTestPayrollService(t)
	employeeRepo.Employees[1] = &models.EmployeeProfile{ID: 1, UserID: 11, FirstName: "Mari", LastName: "Tamm"}
	timesheetRepo.Approved = []*models.Timesheet{
		{ID: 1, EmployeeID: 1, HoursWorked: decimal.RequireFromString("8.00"), OvertimeHours: decimal.RequireFromString("2.00")},
		{ID: 2, EmployeeID: 1, HoursWorked: decimal.RequireFromString("8.00")},
	}

	periodStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	payslip, err := svc.GeneratePayslip(1, periodStart, periodEnd)

	assert.NoError(t, err)
	// 16 regular hours at 20.00 plus 2 overtime hours at 30.00.
	assert.Equal(t, "380.00", payslip.GrossSalary.StringFixed(2))
	assert.Equal(t, "76.00", payslip.TaxAmount.StringFixed(2))
	assert.Equal(t, "254.00", payslip.NetSalary.StringFixed(2))

	assert.NotNil(t, payslip.FilePath)
	assert.Contains(t, files.Saved, "payslips/Payslip-1-2025-03-01.pdf")

	assert.Len(t, notificationRepo.Created, 1)
	assert.Equal(t, uint(11), notificationRepo.Created[0].RecipientID)
	assert.Equal(t, models.NotificationPayslipReady, notificationRepo.Created[0].Type)
}

func TestGeneratePayslipRenderFailure(t *testing.T) {
	svc, employeeRepo, timesheetRepo, _, notificationRepo, renderer, _ := newTestPayrollService(t)
	employeeRepo.Employees[1] = &models.EmployeeProfile{ID: 1, UserID: 11, FirstName: "Mari", LastName: "Tamm"}
	timesheetRepo.Approved = []*models.Timesheet{
		{ID: 1, EmployeeID: 1, HoursWorked: decimal.RequireFromString("8.00")},
	}
	renderer.Err = errors.New("font missing")

	payslip, err := svc.GeneratePayslip(1, time.Now().AddDate(0, -1, 0), time.Now())

	// The payslip row is committed; only the artifact is missing.
	assert.ErrorIs(t, err, ErrDocumentRender)
	assert.NotNil(t, payslip)
	assert.Len(t, employeeRepo.Payslips, 1)
	assert.Empty(t, notificationRepo.Created)
}

func TestRunPayrollUnknownClient(t *testing.T) {
	svc, _, _, _, _, _, _ := newTestPayrollService(t)

	run, err := svc.RunPayroll(99, time.Now(), time.Now())

	assert.Error(t, err)
	assert.Nil(t, run)
}

func TestRunPayrollNoActivePlacements(t *testing.T) {
	svc, _, _, eorRepo, _, _, _ := newTestPayrollService(t)
	eorRepo.Clients[1] = &models.EORClientProfile{ID: 1, CompanyName: "GlobalHire Ltd"}

	run, err := svc.RunPayroll(1, time.Now().AddDate(0, -1, 0), time.Now())

	assert.NoError(t, err)
	assert.Nil(t, run)
	assert.Empty(t, eorRepo.Runs)
}
