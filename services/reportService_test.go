package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"MediClaim/models"
	"MediClaim/policy"
)

func setupReportService() (*ReportService, *MockReportRepository, *MockAppointmentRepository) {
	reports := &MockReportRepository{}
	appointments := &MockAppointmentRepository{}
	return NewReportService(reports, appointments), reports, appointments
}

func acceptedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:        5,
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
		Status:    models.AppointmentAccepted,
	}
}

func TestCreateReportCompletesAppointment(t *testing.T) {
	service, reports, appointments := setupReportService()
	appointmentID := uint(5)
	appointments.On("GetByID", mock.Anything, appointmentID).Return(acceptedAppointment(), nil)
	reports.On("Create", mock.Anything, mock.AnythingOfType("*models.PatientReport")).Return(nil)
	appointments.On("Update", mock.Anything, mock.MatchedBy(func(a *models.Appointment) bool {
		return a.Status == models.AppointmentCompleted
	})).Return(nil)

	report, err := service.Create(context.Background(), doctor, CreateReportRequest{
		PatientID:     "patient-1",
		AppointmentID: &appointmentID,
		ReportType:    models.ReportDiagnosis,
		Title:         "Post-consultation findings",
	})

	assert.NoError(t, err)
	assert.True(t, report.IsActive)
	assert.Equal(t, "doctor-1", report.DoctorID)
	appointments.AssertExpectations(t)
}

func TestCreateReportLeavesCompletedAppointmentAlone(t *testing.T) {
	service, reports, appointments := setupReportService()
	appointmentID := uint(5)
	appointment := acceptedAppointment()
	appointment.Status = models.AppointmentCompleted
	appointments.On("GetByID", mock.Anything, appointmentID).Return(appointment, nil)
	reports.On("Create", mock.Anything, mock.AnythingOfType("*models.PatientReport")).Return(nil)

	_, err := service.Create(context.Background(), doctor, CreateReportRequest{
		PatientID:     "patient-1",
		AppointmentID: &appointmentID,
		ReportType:    models.ReportGeneral,
		Title:         "Follow up",
	})

	assert.NoError(t, err)
	appointments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateReportForOtherDoctorsAppointmentDenied(t *testing.T) {
	service, _, appointments := setupReportService()
	appointmentID := uint(5)
	appointment := acceptedAppointment()
	appointment.DoctorID = "doctor-2"
	appointments.On("GetByID", mock.Anything, appointmentID).Return(appointment, nil)

	_, err := service.Create(context.Background(), doctor, CreateReportRequest{
		PatientID:     "patient-1",
		AppointmentID: &appointmentID,
		ReportType:    models.ReportGeneral,
		Title:         "Findings",
	})

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestCreateReportPatientMismatch(t *testing.T) {
	service, _, appointments := setupReportService()
	appointmentID := uint(5)
	appointments.On("GetByID", mock.Anything, appointmentID).Return(acceptedAppointment(), nil)

	_, err := service.Create(context.Background(), doctor, CreateReportRequest{
		PatientID:     "patient-2",
		AppointmentID: &appointmentID,
		ReportType:    models.ReportGeneral,
		Title:         "Findings",
	})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "does not belong")
}

func TestCreateReportDeniedForPatient(t *testing.T) {
	service, _, _ := setupReportService()

	_, err := service.Create(context.Background(), patient, CreateReportRequest{
		PatientID:  "patient-1",
		ReportType: models.ReportGeneral,
		Title:      "Self report",
	})

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestCreateReportUnknownType(t *testing.T) {
	service, _, _ := setupReportService()

	_, err := service.Create(context.Background(), doctor, CreateReportRequest{
		PatientID:  "patient-1",
		ReportType: "X_RAY",
		Title:      "Findings",
	})

	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDeleteAttachedReportRejected(t *testing.T) {
	service, reports, _ := setupReportService()
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:        7,
		PatientID: "patient-1",
		DoctorID:  "doctor-1",
	}, nil)
	reports.On("AttachmentCount", mock.Anything, uint(7)).Return(int64(1), nil)

	err := service.Delete(context.Background(), doctor, 7)

	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "detach it first")
}

func TestDeleteReportOnlyByAuthor(t *testing.T) {
	service, reports, _ := setupReportService()
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:        7,
		PatientID: "patient-1",
		DoctorID:  "doctor-2",
	}, nil)

	err := service.Delete(context.Background(), doctor, 7)

	assert.ErrorIs(t, err, policy.ErrDenied)
}

func TestUpdateReportBlankTitleRejected(t *testing.T) {
	service, reports, _ := setupReportService()
	reports.On("GetByID", mock.Anything, uint(7)).Return(&models.PatientReport{
		ID:       7,
		DoctorID: "doctor-1",
		Title:    "Original",
	}, nil)

	blank := ""
	_, err := service.Update(context.Background(), doctor, 7, UpdateReportRequest{Title: &blank})

	assert.ErrorIs(t, err, ErrInvalid)
}
