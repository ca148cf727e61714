package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"MediClaim/models"
	"MediClaim/policy"
)

var (
	patient = policy.Principal{UserID: "patient-1", Role: models.RolePatient}
	doctor  = policy.Principal{UserID: "doctor-1", Role: models.RoleDoctor}
	insurer = policy.Principal{UserID: "insurer-1", Role: models.RoleInsurance}
	banker  = policy.Principal{UserID: "bank-1", Role: models.RoleBank}
)

func setupClaimService() (*ClaimService, *MockClaimRepository, *MockReportRepository, *MockUserRepository) {
	claims := &MockClaimRepository{}
	reports := &MockReportRepository{}
	users := &MockUserRepository{}
	return NewClaimService(claims, reports, users), claims, reports, users
}

func draftClaim() *models.Claim {
	return &models.Claim{
		ID:          1,
		ClaimNumber: "CLM-000001-000001",
		PatientID:   "patient-1",
		ClaimAmount: decimal.NewFromInt(250),
		Status:      models.ClaimDraft,
	}
}

func TestCreateClaimStartsInDraft(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claims.On("Create", mock.Anything, mock.AnythingOfType("*models.Claim")).Return(nil)

	claim, err := service.Create(context.Background(), patient, CreateClaimRequest{
		Diagnosis:     "Fractured wrist",
		TreatmentDate: time.Now(),
		ClaimAmount:   decimal.NewFromFloat(125.50),
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ClaimDraft, claim.Status)
	assert.Equal(t, "patient-1", claim.PatientID)
	assert.Regexp(t, regexp.MustCompile(`^CLM-\d{6}-\d{6}$`), claim.ClaimNumber)
	claims.AssertExpectations(t)
}

func TestCreateClaimDeniedForDoctor(t *testing.T) {
	service, _, _, _ := setupClaimService()

	_, err := service.Create(context.Background(), doctor, CreateClaimRequest{
		Diagnosis:     "Fractured wrist",
		TreatmentDate: time.Now(),
		ClaimAmount:   decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestCreateClaimRejectsNonPositiveAmount(t *testing.T) {
	service, _, _, _ := setupClaimService()

	_, err := service.Create(context.Background(), patient, CreateClaimRequest{
		Diagnosis:     "Fractured wrist",
		TreatmentDate: time.Now(),
		ClaimAmount:   decimal.Zero,
	})

	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTransitionSubmitStampsTimestamp(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)
	claims.On("Update", mock.Anything, mock.AnythingOfType("*models.Claim")).Return(nil)

	claim, err := service.Transition(context.Background(), insurer, 1, TransitionClaimRequest{
		Status: models.ClaimSubmitted,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ClaimSubmitted, claim.Status)
	assert.NotNil(t, claim.SubmittedAt)
	claims.AssertExpectations(t)
}

func TestTransitionApproveSetsAmountAndNotifies(t *testing.T) {
	service, claims, _, users := setupClaimService()
	claim := draftClaim()
	claim.Status = models.ClaimUnderReview
	claims.On("GetByID", mock.Anything, uint(1)).Return(claim, nil)
	claims.On("Update", mock.Anything, mock.AnythingOfType("*models.Claim")).Return(nil)
	users.On("GetUserByID", mock.Anything, "patient-1").Return(&models.User{
		ID:    "patient-1",
		Email: "patient@mediclaim.dev",
	}, nil)

	amount := decimal.NewFromInt(200)
	updated, err := service.Transition(context.Background(), insurer, 1, TransitionClaimRequest{
		Status:         models.ClaimApproved,
		ApprovedAmount: &amount,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.ClaimApproved, updated.Status)
	assert.NotNil(t, updated.ApprovedAt)
	assert.True(t, updated.ApprovedAmount.Equal(amount))
	users.AssertExpectations(t)
}

func TestTransitionCannotSkipReview(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claim := draftClaim()
	claim.Status = models.ClaimSubmitted
	claims.On("GetByID", mock.Anything, uint(1)).Return(claim, nil)

	_, err := service.Transition(context.Background(), insurer, 1, TransitionClaimRequest{
		Status: models.ClaimApproved,
	})

	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBankCannotPayUnapprovedClaim(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claim := draftClaim()
	claim.Status = models.ClaimSubmitted
	claims.On("GetByID", mock.Anything, uint(1)).Return(claim, nil)

	_, err := service.Transition(context.Background(), banker, 1, TransitionClaimRequest{
		Status: models.ClaimPaid,
	})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "Only approved claims can be marked as paid")
}

func TestInsurerCannotMarkClaimPaid(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claim := draftClaim()
	claim.Status = models.ClaimApproved
	claims.On("GetByID", mock.Anything, uint(1)).Return(claim, nil)

	_, err := service.Transition(context.Background(), insurer, 1, TransitionClaimRequest{
		Status: models.ClaimPaid,
	})

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestPatientCannotEditSubmittedClaim(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claim := draftClaim()
	claim.Status = models.ClaimSubmitted
	claims.On("GetByID", mock.Anything, uint(1)).Return(claim, nil)

	diagnosis := "Changed diagnosis"
	_, err := service.Update(context.Background(), patient, 1, UpdateClaimRequest{
		Diagnosis: &diagnosis,
	})

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestDeleteSubmittedClaimDenied(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claim := draftClaim()
	claim.Status = models.ClaimSubmitted
	claims.On("GetByID", mock.Anything, uint(1)).Return(claim, nil)

	err := service.Delete(context.Background(), patient, 1)

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestDeleteDraftClaim(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)
	claims.On("Delete", mock.Anything, uint(1)).Return(nil)

	err := service.Delete(context.Background(), patient, 1)

	assert.NoError(t, err)
	claims.AssertExpectations(t)
}

func TestAttachReport(t *testing.T) {
	service, claims, reports, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:        7,
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
	}, nil)
	claims.On("GetAttachment", mock.Anything, uint(1), uint(7)).Return(nil, nil)
	claims.On("CreateAttachment", mock.Anything, mock.AnythingOfType("*models.ClaimReport")).Return(nil)

	attachment, err := service.AttachReport(context.Background(), patient, 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), attachment.ClaimID)
	assert.Equal(t, uint(7), attachment.ReportID)
	assert.Equal(t, "patient-1", attachment.AttachedByID)
	claims.AssertExpectations(t)
}

func TestAttachReportTwiceRejected(t *testing.T) {
	service, claims, reports, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:        7,
		PatientID: "patient-1",
	}, nil)
	claims.On("GetAttachment", mock.Anything, uint(1), uint(7)).Return(&models.ClaimReport{
		ClaimID:  1,
		ReportID: 7,
	}, nil)

	_, err := service.AttachReport(context.Background(), patient, 1, 7)

	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "already attached")
}

func TestAttachOtherPatientsReportDenied(t *testing.T) {
	service, claims, reports, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:        7,
		PatientID: "patient-2",
	}, nil)

	_, err := service.AttachReport(context.Background(), patient, 1, 7)

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestDetachMissingAttachment(t *testing.T) {
	service, claims, reports, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:        7,
		PatientID: "patient-1",
	}, nil)
	claims.On("GetAttachment", mock.Anything, uint(1), uint(7)).Return(nil, nil)

	err := service.DetachReport(context.Background(), patient, 1, 7)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetClaimScopedToOwner(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(1)).Return(draftClaim(), nil)

	other := policy.Principal{UserID: "patient-2", Role: models.RolePatient}
	_, err := service.Get(context.Background(), other, 1)

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestGetMissingClaim(t *testing.T) {
	service, claims, _, _ := setupClaimService()
	claims.On("GetByID", mock.Anything, uint(42)).Return(nil, nil)

	_, err := service.Get(context.Background(), insurer, 42)

	assert.ErrorIs(t, err, ErrNotFound)
}
