package services

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/repositories"
	"MediClaim/workflow"
)

// CreateAppointmentRequest is the payload for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID    string    `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

func (r CreateAppointmentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DoctorID, validation.Required),
		validation.Field(&r.ScheduledAt, validation.Required),
	)
}

// UpdateAppointmentRequest carries the mutable fields; nil means unchanged.
type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time                `json:"scheduled_at"`
	Status      *models.AppointmentStatus `json:"status"`
	Notes       *string                   `json:"notes"`
}

type AppointmentService struct {
	appointments repositories.AppointmentRepository
	users        repositories.UserRepository
}

func NewAppointmentService(appointments repositories.AppointmentRepository, users repositories.UserRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments, users: users}
}

func (s *AppointmentService) Create(ctx context.Context, p policy.Principal, req CreateAppointmentRequest) (*models.Appointment, error) {
	if err := policy.Decide(p, policy.AppointmentCreate, policy.Facts{}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidf("%v", err)
	}
	if !req.ScheduledAt.After(time.Now()) {
		return nil, invalidf("appointment must be scheduled in the future")
	}

	doctor, err := s.users.GetUserByID(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil || doctor.Role != models.RoleDoctor {
		return nil, invalidf("doctor not found")
	}

	appointment := &models.Appointment{
		PatientID:   p.UserID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Status:      models.AppointmentPending,
		Notes:       req.Notes,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) Get(ctx context.Context, p policy.Principal, id uint) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, notFound("appointment")
	}
	err = policy.Decide(p, policy.AppointmentView, policy.Facts{
		OwnerPatientID: appointment.PatientID,
		OwnerDoctorID:  appointment.DoctorID,
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

// List scopes results to the caller's own records for patients and doctors;
// insurers and banks see everything.
func (s *AppointmentService) List(ctx context.Context, p policy.Principal, filter repositories.AppointmentFilter) ([]models.Appointment, int64, error) {
	switch p.Role {
	case models.RolePatient:
		filter.PatientID = p.UserID
	case models.RoleDoctor:
		filter.DoctorID = p.UserID
	}
	return s.appointments.List(ctx, filter)
}

func (s *AppointmentService) Update(ctx context.Context, p policy.Principal, id uint, req UpdateAppointmentRequest) (*models.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, notFound("appointment")
	}

	facts := policy.Facts{
		OwnerPatientID: appointment.PatientID,
		OwnerDoctorID:  appointment.DoctorID,
		Status:         string(appointment.Status),
	}

	if req.ScheduledAt != nil {
		if err := policy.Decide(p, policy.AppointmentReschedule, facts); err != nil {
			return nil, err
		}
		if !req.ScheduledAt.After(time.Now()) {
			return nil, invalidf("appointment must be scheduled in the future")
		}
		appointment.ScheduledAt = *req.ScheduledAt
	}

	if err := policy.Decide(p, policy.AppointmentUpdate, facts); err != nil {
		return nil, err
	}

	if req.Status != nil && *req.Status != appointment.Status {
		// COMPLETED is never set directly; it is the side effect of a
		// doctor filing a report.
		if *req.Status == models.AppointmentCompleted {
			return nil, invalidf("appointments are completed automatically when a report is filed")
		}
		if err := workflow.Appointments.Step(appointment.Status, *req.Status); err != nil {
			return nil, invalidf("%v", err)
		}
		appointment.Status = *req.Status
	}

	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) Delete(ctx context.Context, p policy.Principal, id uint) error {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return notFound("appointment")
	}
	err = policy.Decide(p, policy.AppointmentDelete, policy.Facts{
		OwnerPatientID: appointment.PatientID,
		Status:         string(appointment.Status),
	})
	if err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}
