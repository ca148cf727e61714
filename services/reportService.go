package services

import (
	"context"
	"log"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/repositories"
	"MediClaim/workflow"
)

// CreateReportRequest is the payload for a doctor filing a clinical report.
type CreateReportRequest struct {
	PatientID       string            `json:"patient_id"`
	AppointmentID   *uint             `json:"appointment_id"`
	ReportType      models.ReportType `json:"report_type"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Diagnosis       string            `json:"diagnosis"`
	Treatment       string            `json:"treatment"`
	Medications     string            `json:"medications"`
	Recommendations string            `json:"recommendations"`
	FollowUpDate    *time.Time        `json:"follow_up_date"`
	DocumentURL     string            `json:"document_url"`
}

func (r CreateReportRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PatientID, validation.Required),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.ReportType, validation.Required),
	)
}

// UpdateReportRequest carries the mutable fields; nil means unchanged.
type UpdateReportRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Diagnosis       *string    `json:"diagnosis"`
	Treatment       *string    `json:"treatment"`
	Medications     *string    `json:"medications"`
	Recommendations *string    `json:"recommendations"`
	FollowUpDate    *time.Time `json:"follow_up_date"`
	IsActive        *bool      `json:"is_active"`
}

type ReportService struct {
	reports      repositories.ReportRepository
	appointments repositories.AppointmentRepository
}

func NewReportService(reports repositories.ReportRepository, appointments repositories.AppointmentRepository) *ReportService {
	return &ReportService{reports: reports, appointments: appointments}
}

// Create files a report and, when it is linked to an appointment the doctor
// owns, completes that appointment. Linking checks ownership but not the
// appointment's status; only the completion side effect is status-gated.
func (s *ReportService) Create(ctx context.Context, p policy.Principal, req CreateReportRequest) (*models.PatientReport, error) {
	if err := req.Validate(); err != nil {
		return nil, invalidf("%v", err)
	}
	if !models.ValidReportType(req.ReportType) {
		return nil, invalidf("unknown report type %s", req.ReportType)
	}

	var appointment *models.Appointment
	facts := policy.Facts{OwnerDoctorID: p.UserID}
	if req.AppointmentID != nil {
		var err error
		appointment, err = s.appointments.GetByID(ctx, *req.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appointment == nil {
			return nil, notFound("appointment")
		}
		facts.OwnerDoctorID = appointment.DoctorID
		if appointment.PatientID != req.PatientID {
			return nil, invalidf("appointment does not belong to this patient")
		}
	}
	if err := policy.Decide(p, policy.ReportCreate, facts); err != nil {
		return nil, err
	}

	report := &models.PatientReport{
		PatientID:       req.PatientID,
		DoctorID:        p.UserID,
		AppointmentID:   req.AppointmentID,
		ReportType:      req.ReportType,
		Title:           req.Title,
		Description:     req.Description,
		Diagnosis:       req.Diagnosis,
		Treatment:       req.Treatment,
		Medications:     req.Medications,
		Recommendations: req.Recommendations,
		FollowUpDate:    req.FollowUpDate,
		DocumentURL:     req.DocumentURL,
		IsActive:        true,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if appointment != nil && workflow.Appointments.Can(appointment.Status, models.AppointmentCompleted) {
		appointment.Status = models.AppointmentCompleted
		if err := s.appointments.Update(ctx, appointment); err != nil {
			// the report exists; the next update of the appointment
			// will reconcile its status
			log.Printf("Failed to complete appointment %d after report creation: %v", appointment.ID, err)
		}
	}
	return report, nil
}

func (s *ReportService) Get(ctx context.Context, p policy.Principal, id uint) (*models.PatientReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, notFound("patient report")
	}
	err = policy.Decide(p, policy.ReportView, policy.Facts{
		OwnerPatientID: report.PatientID,
		OwnerDoctorID:  report.DoctorID,
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context, p policy.Principal, filter repositories.ReportFilter) ([]models.PatientReport, int64, error) {
	switch p.Role {
	case models.RolePatient:
		filter.PatientID = p.UserID
	case models.RoleDoctor:
		filter.DoctorID = p.UserID
	}
	return s.reports.List(ctx, filter)
}

func (s *ReportService) Update(ctx context.Context, p policy.Principal, id uint, req UpdateReportRequest) (*models.PatientReport, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, notFound("patient report")
	}
	if err := policy.Decide(p, policy.ReportUpdate, policy.Facts{OwnerDoctorID: report.DoctorID}); err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, invalidf("title cannot be blank")
		}
		report.Title = *req.Title
	}
	if req.Description != nil {
		report.Description = *req.Description
	}
	if req.Diagnosis != nil {
		report.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		report.Treatment = *req.Treatment
	}
	if req.Medications != nil {
		report.Medications = *req.Medications
	}
	if req.Recommendations != nil {
		report.Recommendations = *req.Recommendations
	}
	if req.FollowUpDate != nil {
		report.FollowUpDate = req.FollowUpDate
	}
	if req.IsActive != nil {
		report.IsActive = *req.IsActive
	}

	if err := s.reports.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes a report unless a claim still references it.
func (s *ReportService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if report == nil {
		return notFound("patient report")
	}
	if err := policy.Decide(p, policy.ReportDelete, policy.Facts{OwnerDoctorID: report.DoctorID}); err != nil {
		return err
	}

	attached, err := s.reports.AttachmentCount(ctx, id)
	if err != nil {
		return err
	}
	if attached > 0 {
		return invalidf("report is attached to a claim; detach it first")
	}
	return s.reports.Delete(ctx, id)
}
