package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"hr-portal-svc/internal/models"
)

func newTestEORService() (EORService, *mockEORRepository, *mockEmployeeRepository) {
	eorRepo := newMockEORRepository()
	employeeRepo := newMockEmployeeRepository()
	svc := NewEORService(eorRepo, employeeRepo, testLogger())
	return svc, eorRepo, employeeRepo
}

func TestCreateAgreementStartsDraft(t *testing.T) {
	svc, eorRepo, _ := newTestEORService()
	eorRepo.Clients[1] = &models.EORClientProfile{ID: 1, CompanyName: "GlobalHire Ltd"}

	agreement, err := svc.CreateAgreement(&models.EORAgreement{
		ID:          1,
		EORClientID: 1,
		Status:      models.AgreementActive, // caller-supplied status is ignored
	})

	assert.NoError(t, err)
	assert.Equal(t, models.AgreementDraft, agreement.Status)
}

func TestActivateAgreement(t *testing.T) {
	svc, eorRepo, _ := newTestEORService()
	eorRepo.Agreements[1] = &models.EORAgreement{ID: 1, EORClientID: 1, Status: models.AgreementDraft}

	agreement, err := svc.ActivateAgreement(1)

	assert.NoError(t, err)
	assert.Equal(t, models.AgreementActive, agreement.Status)
}

func TestActivateAgreementAlreadyActive(t *testing.T) {
	svc, eorRepo, _ := newTestEORService()
	eorRepo.Agreements[1] = &models.EORAgreement{ID: 1, EORClientID: 1, Status: models.AgreementActive}

	_, err := svc.ActivateAgreement(1)

	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestCreatePlacement(t *testing.T) {
	svc, eorRepo, employeeRepo := newTestEORService()
	eorRepo.Agreements[1] = &models.EORAgreement{ID: 1, EORClientID: 1, Status: models.AgreementActive}
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2}

	placement, err := svc.CreatePlacement(&models.EORPlacement{
		ID:             1,
		EORClientID:    1,
		EORAgreementID: 1,
		EmployeeID:     2,
		GrossSalary:    decimal.RequireFromString("3000.00"),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PlacementActive, placement.Status)
	assert.Len(t, eorRepo.Placements, 1)
}

func TestCreatePlacementAgreementNotActive(t *testing.T) {
	svc, eorRepo, employeeRepo := newTestEORService()
	eorRepo.Agreements[1] = &models.EORAgreement{ID: 1, EORClientID: 1, Status: models.AgreementDraft}
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2}

	_, err := svc.CreatePlacement(&models.EORPlacement{
		EORClientID:    1,
		EORAgreementID: 1,
		EmployeeID:     2,
	})

	assert.ErrorIs(t, err, ErrAgreementNotActive)
	assert.Empty(t, eorRepo.Placements)
}

func TestCreatePlacementAgreementWrongClient(t *testing.T) {
	svc, eorRepo, employeeRepo := newTestEORService()
	eorRepo.Agreements[1] = &models.EORAgreement{ID: 1, EORClientID: 9, Status: models.AgreementActive}
	employeeRepo.Employees[2] = &models.EmployeeProfile{ID: 2}

	_, err := svc.CreatePlacement(&models.EORPlacement{
		EORClientID:    1,
		EORAgreementID: 1,
		EmployeeID:     2,
	})

	assert.Error(t, err)
	assert.Empty(t, eorRepo.Placements)
}

func TestTerminatePlacement(t *testing.T) {
	svc, eorRepo, _ := newTestEORService()
	eorRepo.Placements = []*models.EORPlacement{
		{ID: 1, EORClientID: 1, EmployeeID: 2, Status: models.PlacementActive},
	}

	endDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	placement, err := svc.TerminatePlacement(1, endDate)

	assert.NoError(t, err)
	assert.Equal(t, models.PlacementTerminated, placement.Status)
	assert.Equal(t, endDate, *placement.EndDate)
}

func TestTerminatePlacementNotActive(t *testing.T) {
	svc, eorRepo, _ := newTestEORService()
	eorRepo.Placements = []*models.EORPlacement{
		{ID: 1, EORClientID: 1, EmployeeID: 2, Status: models.PlacementTerminated},
	}

	_, err := svc.TerminatePlacement(1, time.Now())

	assert.ErrorIs(t, err, ErrPlacementNotActive)
}
