package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"hr-portal-svc/internal/models"
	"hr-portal-svc/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

// --- MOCKS ---

// mockInvoiceRepository simulates the invoice store. Invoice numbers are
// allocated from an in-memory counter per year.
type mockInvoiceRepository struct {
	Sequences     map[int]int64
	Invoices      map[uint]*models.Invoice
	CreatedItems  []*models.InvoiceLineItem
	PDFPaths      map[uint]string
	StatusChanges map[uint]models.InvoiceStatus
	OverdueCount  int64
	NextID        uint

	ErrNextNumber  error
	ErrCreate      error
	ErrCreateItems error
}

func newMockInvoiceRepository() *mockInvoiceRepository {
	return &mockInvoiceRepository{
		Sequences:     make(map[int]int64),
		Invoices:      make(map[uint]*models.Invoice),
		PDFPaths:      make(map[uint]string),
		StatusChanges: make(map[uint]models.InvoiceStatus),
	}
}

func (m *mockInvoiceRepository) NextInvoiceNumber(tx *gorm.DB, year int) (string, error) {
	if m.ErrNextNumber != nil {
		return "", m.ErrNextNumber
	}
	m.Sequences[year]++
	return fmt.Sprintf("INV-%d-%04d", year, m.Sequences[year]), nil
}

func (m *mockInvoiceRepository) CreateInvoice(tx *gorm.DB, invoice *models.Invoice) error {
	if m.ErrCreate != nil {
		return m.ErrCreate
	}
	m.NextID++
	invoice.ID = m.NextID
	m.Invoices[invoice.ID] = invoice
	return nil
}

func (m *mockInvoiceRepository) CreateLineItems(tx *gorm.DB, items []*models.InvoiceLineItem) error {
	if m.ErrCreateItems != nil {
		return m.ErrCreateItems
	}
	m.CreatedItems = append(m.CreatedItems, items...)
	return nil
}

func (m *mockInvoiceRepository) GetInvoiceByID(id uint) (*models.Invoice, error) {
	invoice, ok := m.Invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return invoice, nil
}

func (m *mockInvoiceRepository) GetInvoiceByNumber(number string) (*models.Invoice, error) {
	for _, invoice := range m.Invoices {
		if invoice.InvoiceNumber == number {
			return invoice, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockInvoiceRepository) ListInvoices(client *models.ClientRef, status *models.InvoiceStatus, page, limit int) ([]*models.Invoice, int64, error) {
	var invoices []*models.Invoice
	for _, invoice := range m.Invoices {
		if client != nil && (invoice.ClientType != client.Type || invoice.ClientID != client.ID) {
			continue
		}
		if status != nil && invoice.Status != *status {
			continue
		}
		invoices = append(invoices, invoice)
	}
	return invoices, int64(len(invoices)), nil
}

func (m *mockInvoiceRepository) UpdatePDFPath(id uint, path string) error {
	m.PDFPaths[id] = path
	return nil
}

func (m *mockInvoiceRepository) UpdateStatus(tx *gorm.DB, id uint, status models.InvoiceStatus) error {
	m.StatusChanges[id] = status
	if invoice, ok := m.Invoices[id]; ok {
		invoice.Status = status
	}
	return nil
}

func (m *mockInvoiceRepository) MarkOverdue(asOf time.Time) (int64, error) {
	return m.OverdueCount, nil
}

// mockPaymentRepository simulates the payment store
type mockPaymentRepository struct {
	Payments []*models.Payment
}

func (m *mockPaymentRepository) CreatePayment(tx *gorm.DB, payment *models.Payment) error {
	m.Payments = append(m.Payments, payment)
	return nil
}

func (m *mockPaymentRepository) ListPaymentsByInvoice(invoiceID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	for _, p := range m.Payments {
		if p.InvoiceID == invoiceID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *mockPaymentRepository) SumSuccessfulPayments(tx *gorm.DB, invoiceID uint) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range m.Payments {
		if p.InvoiceID == invoiceID && p.Status == models.PaymentSuccess {
			sum = sum.Add(p.AmountPaid)
		}
	}
	return sum, nil
}

// mockEmployerRepository simulates the employer-side store
type mockEmployerRepository struct {
	Employers    map[uint]*models.EmployerProfile
	Postings     map[uint]*models.JobPosting
	Applications map[uint]*models.Application
	Assignments  map[uint]*models.Assignment
}

func newMockEmployerRepository() *mockEmployerRepository {
	return &mockEmployerRepository{
		Employers:    make(map[uint]*models.EmployerProfile),
		Postings:     make(map[uint]*models.JobPosting),
		Applications: make(map[uint]*models.Application),
		Assignments:  make(map[uint]*models.Assignment),
	}
}

func (m *mockEmployerRepository) CreateEmployer(profile *models.EmployerProfile) error {
	m.Employers[profile.ID] = profile
	return nil
}

func (m *mockEmployerRepository) GetEmployerByID(id uint) (*models.EmployerProfile, error) {
	profile, ok := m.Employers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockEmployerRepository) GetEmployerByUserID(userID uint) (*models.EmployerProfile, error) {
	for _, profile := range m.Employers {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployerRepository) ListEmployers() ([]*models.EmployerProfile, error) {
	var profiles []*models.EmployerProfile
	for _, profile := range m.Employers {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (m *mockEmployerRepository) CreateJobPosting(posting *models.JobPosting) error {
	m.Postings[posting.ID] = posting
	return nil
}

func (m *mockEmployerRepository) GetJobPostingByID(id uint) (*models.JobPosting, error) {
	posting, ok := m.Postings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return posting, nil
}

func (m *mockEmployerRepository) ListJobPostings(employerID *uint, status *models.JobStatus, page, limit int) ([]*models.JobPosting, int64, error) {
	var postings []*models.JobPosting
	for _, posting := range m.Postings {
		postings = append(postings, posting)
	}
	return postings, int64(len(postings)), nil
}

func (m *mockEmployerRepository) UpdateJobPosting(posting *models.JobPosting) error {
	m.Postings[posting.ID] = posting
	return nil
}

func (m *mockEmployerRepository) CreateApplication(application *models.Application) error {
	application.ID = uint(len(m.Applications) + 1)
	m.Applications[application.ID] = application
	return nil
}

func (m *mockEmployerRepository) GetApplicationByID(id uint) (*models.Application, error) {
	application, ok := m.Applications[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return application, nil
}

func (m *mockEmployerRepository) ListApplicationsByPosting(postingID uint) ([]*models.Application, error) {
	var applications []*models.Application
	for _, application := range m.Applications {
		if application.JobPostingID == postingID {
			applications = append(applications, application)
		}
	}
	return applications, nil
}

func (m *mockEmployerRepository) UpdateApplication(application *models.Application) error {
	m.Applications[application.ID] = application
	return nil
}

func (m *mockEmployerRepository) CreateAssignment(assignment *models.Assignment) error {
	if assignment.ID == 0 {
		assignment.ID = uint(len(m.Assignments) + 1)
	}
	m.Assignments[assignment.ID] = assignment
	return nil
}

func (m *mockEmployerRepository) GetAssignmentByID(id uint) (*models.Assignment, error) {
	assignment, ok := m.Assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (m *mockEmployerRepository) ListAssignmentsByEmployer(employerID uint) ([]*models.Assignment, error) {
	var assignments []*models.Assignment
	for _, assignment := range m.Assignments {
		if assignment.EmployerID == employerID {
			assignments = append(assignments, assignment)
		}
	}
	return assignments, nil
}

// mockEORRepository simulates the EOR-side store
type mockEORRepository struct {
	Clients    map[uint]*models.EORClientProfile
	Agreements map[uint]*models.EORAgreement
	Placements []*models.EORPlacement
	Runs       map[uint]*models.PayrollRun
	NextRunID  uint
}

func newMockEORRepository() *mockEORRepository {
	return &mockEORRepository{
		Clients:    make(map[uint]*models.EORClientProfile),
		Agreements: make(map[uint]*models.EORAgreement),
		Runs:       make(map[uint]*models.PayrollRun),
	}
}

func (m *mockEORRepository) CreateEORClient(profile *models.EORClientProfile) error {
	m.Clients[profile.ID] = profile
	return nil
}

func (m *mockEORRepository) GetEORClientByID(id uint) (*models.EORClientProfile, error) {
	profile, ok := m.Clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockEORRepository) GetEORClientByUserID(userID uint) (*models.EORClientProfile, error) {
	for _, profile := range m.Clients {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEORRepository) ListEORClients() ([]*models.EORClientProfile, error) {
	var profiles []*models.EORClientProfile
	for _, profile := range m.Clients {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (m *mockEORRepository) CreateAgreement(agreement *models.EORAgreement) error {
	m.Agreements[agreement.ID] = agreement
	return nil
}

func (m *mockEORRepository) GetAgreementByID(id uint) (*models.EORAgreement, error) {
	agreement, ok := m.Agreements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return agreement, nil
}

func (m *mockEORRepository) ListAgreementsByClient(clientID uint) ([]*models.EORAgreement, error) {
	var agreements []*models.EORAgreement
	for _, agreement := range m.Agreements {
		if agreement.EORClientID == clientID {
			agreements = append(agreements, agreement)
		}
	}
	return agreements, nil
}

func (m *mockEORRepository) UpdateAgreement(agreement *models.EORAgreement) error {
	m.Agreements[agreement.ID] = agreement
	return nil
}

func (m *mockEORRepository) CreatePlacement(placement *models.EORPlacement) error {
	m.Placements = append(m.Placements, placement)
	return nil
}

func (m *mockEORRepository) GetPlacementByID(id uint) (*models.EORPlacement, error) {
	for _, placement := range m.Placements {
		if placement.ID == id {
			return placement, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEORRepository) GetActivePlacements(clientID uint) ([]*models.EORPlacement, error) {
	var placements []*models.EORPlacement
	for _, placement := range m.Placements {
		if placement.EORClientID == clientID && placement.Status == models.PlacementActive {
			placements = append(placements, placement)
		}
	}
	return placements, nil
}

func (m *mockEORRepository) UpdatePlacement(placement *models.EORPlacement) error {
	return nil
}

func (m *mockEORRepository) CreatePayrollRun(tx *gorm.DB, run *models.PayrollRun) error {
	m.NextRunID++
	run.ID = m.NextRunID
	m.Runs[run.ID] = run
	return nil
}

func (m *mockEORRepository) GetPayrollRunByID(id uint) (*models.PayrollRun, error) {
	run, ok := m.Runs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return run, nil
}

func (m *mockEORRepository) GetPayrollRunForPeriod(clientID uint, periodStart, periodEnd time.Time) (*models.PayrollRun, error) {
	for _, run := range m.Runs {
		if run.EORClientID == clientID && run.PeriodStartDate.Equal(periodStart) && run.PeriodEndDate.Equal(periodEnd) {
			return run, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEORRepository) UpdatePayrollRun(run *models.PayrollRun) error {
	m.Runs[run.ID] = run
	return nil
}

// mockEmployeeRepository simulates the employee store
type mockEmployeeRepository struct {
	Employees map[uint]*models.EmployeeProfile
	Payslips  []*models.Payslip
	FilePaths map[uint]string
	NextID    uint
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{
		Employees: make(map[uint]*models.EmployeeProfile),
		FilePaths: make(map[uint]string),
	}
}

func (m *mockEmployeeRepository) CreateEmployee(profile *models.EmployeeProfile) error {
	m.Employees[profile.ID] = profile
	return nil
}

func (m *mockEmployeeRepository) GetEmployeeByID(id uint) (*models.EmployeeProfile, error) {
	profile, ok := m.Employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *mockEmployeeRepository) GetEmployeeByUserID(userID uint) (*models.EmployeeProfile, error) {
	for _, profile := range m.Employees {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepository) CreateWorkSchedule(schedule *models.WorkSchedule) error {
	return nil
}

func (m *mockEmployeeRepository) ListWorkSchedulesByEmployee(employeeID uint) ([]*models.WorkSchedule, error) {
	return nil, nil
}

func (m *mockEmployeeRepository) UpdateWorkSchedule(schedule *models.WorkSchedule) error {
	return nil
}

func (m *mockEmployeeRepository) CreatePayslip(tx *gorm.DB, payslip *models.Payslip) error {
	m.NextID++
	payslip.ID = m.NextID
	m.Payslips = append(m.Payslips, payslip)
	return nil
}

func (m *mockEmployeeRepository) GetPayslipByID(id uint) (*models.Payslip, error) {
	for _, payslip := range m.Payslips {
		if payslip.ID == id {
			return payslip, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepository) ListPayslipsByEmployee(employeeID uint) ([]*models.Payslip, error) {
	var payslips []*models.Payslip
	for _, payslip := range m.Payslips {
		if payslip.EmployeeID == employeeID {
			payslips = append(payslips, payslip)
		}
	}
	return payslips, nil
}

func (m *mockEmployeeRepository) UpdatePayslipFilePath(id uint, path string) error {
	m.FilePaths[id] = path
	return nil
}

// mockTimesheetRepository simulates the timesheet store
type mockTimesheetRepository struct {
	Timesheets     map[uint]*models.Timesheet
	Billable       []*models.Timesheet
	Approved       []*models.Timesheet
	MarkedInvoiced []uint
}

func newMockTimesheetRepository() *mockTimesheetRepository {
	return &mockTimesheetRepository{
		Timesheets: make(map[uint]*models.Timesheet),
	}
}

func (m *mockTimesheetRepository) CreateTimesheet(timesheet *models.Timesheet) error {
	timesheet.ID = uint(len(m.Timesheets) + 1)
	m.Timesheets[timesheet.ID] = timesheet
	return nil
}

func (m *mockTimesheetRepository) GetTimesheetByID(id uint) (*models.Timesheet, error) {
	timesheet, ok := m.Timesheets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return timesheet, nil
}

func (m *mockTimesheetRepository) ListTimesheetsByEmployee(employeeID uint, status *models.TimesheetStatus, page, limit int) ([]*models.Timesheet, int64, error) {
	var timesheets []*models.Timesheet
	for _, timesheet := range m.Timesheets {
		if timesheet.EmployeeID == employeeID {
			timesheets = append(timesheets, timesheet)
		}
	}
	return timesheets, int64(len(timesheets)), nil
}

func (m *mockTimesheetRepository) UpdateTimesheet(timesheet *models.Timesheet) error {
	m.Timesheets[timesheet.ID] = timesheet
	return nil
}

func (m *mockTimesheetRepository) GetBillableTimesheets(employerID uint, periodStart, periodEnd time.Time) ([]*models.Timesheet, error) {
	return m.Billable, nil
}

func (m *mockTimesheetRepository) MarkInvoiced(tx *gorm.DB, ids []uint) error {
	m.MarkedInvoiced = append(m.MarkedInvoiced, ids...)
	return nil
}

func (m *mockTimesheetRepository) GetApprovedTimesheets(employeeID uint, periodStart, periodEnd time.Time) ([]*models.Timesheet, error) {
	return m.Approved, nil
}

// mockNotificationRepository captures created notifications
type mockNotificationRepository struct {
	Created []*models.Notification
}

func (m *mockNotificationRepository) CreateNotification(notification *models.Notification) error {
	m.Created = append(m.Created, notification)
	return nil
}

func (m *mockNotificationRepository) ListNotificationsByRecipient(recipientID uint, unreadOnly bool) ([]*models.Notification, error) {
	return m.Created, nil
}

func (m *mockNotificationRepository) MarkRead(id uint) error {
	return nil
}

// mockRenderer simulates PDF rendering
type mockRenderer struct {
	Content []byte
	Err     error
}

func (m *mockRenderer) RenderInvoice(invoice *models.Invoice, clientName string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Content, nil
}

func (m *mockRenderer) RenderPayslip(payslip *models.Payslip, employeeName string) ([]byte, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Content, nil
}

// mockFileStore captures saved artifacts in memory
type mockFileStore struct {
	Saved map[string][]byte
	Err   error
}

func newMockFileStore() *mockFileStore {
	return &mockFileStore{Saved: make(map[string][]byte)}
}

func (m *mockFileStore) Save(relPath string, content []byte) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Saved[relPath] = content
	return relPath, nil
}

func (m *mockFileStore) Read(relPath string) ([]byte, error) {
	content, ok := m.Saved[relPath]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return content, nil
}

func (m *mockFileStore) Exists(relPath string) bool {
	_, ok := m.Saved[relPath]
	return ok
}
