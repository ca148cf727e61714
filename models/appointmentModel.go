package models

import (
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentAccepted  AppointmentStatus = "ACCEPTED"
	AppointmentRejected  AppointmentStatus = "REJECTED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentConsulted AppointmentStatus = "CONSULTED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// Appointment is a patient's booking with a doctor. Only the booking patient
// may delete it, and only while it is still PENDING.
type Appointment struct {
	ID          uint              `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID   string            `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID    string            `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	ScheduledAt time.Time         `gorm:"column:scheduled_at;not null;index" json:"scheduled_at"`
	Status      AppointmentStatus `gorm:"size:20;column:status;not null;index" json:"status"`
	Notes       string            `gorm:"type:text;column:notes" json:"notes"`
	CreatedAt   time.Time         `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	Patient User `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor  User `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
}

func (Appointment) TableName() string {
	return "appointment"
}
