package models

import (
	"time"
)

// ReportType classifies a clinical record authored by a doctor.
type ReportType string

const (
	ReportGeneral      ReportType = "GENERAL"
	ReportLabResult    ReportType = "LAB_RESULT"
	ReportPrescription ReportType = "PRESCRIPTION"
	ReportDiagnosis    ReportType = "DIAGNOSIS_REPORT"
	ReportScan         ReportType = "SCAN_REPORT"
	ReportSurgery      ReportType = "SURGERY_REPORT"
	ReportFollowUp     ReportType = "FOLLOW_UP_NOTE"
)

// ValidReportType reports whether t is one of the seven report kinds.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportGeneral, ReportLabResult, ReportPrescription, ReportDiagnosis,
		ReportScan, ReportSurgery, ReportFollowUp:
		return true
	}
	return false
}

// PatientReport is a doctor-authored clinical record. It may evidence one or
// more claims through ClaimReport attachments; while attached it cannot be
// deleted.
type PatientReport struct {
	ID              uint       `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PatientID       string     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        string     `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentID   *uint      `gorm:"column:appointment_id;index" json:"appointment_id,omitempty"`
	ReportType      ReportType `gorm:"size:30;column:report_type;not null" json:"report_type"`
	Title           string     `gorm:"size:255;column:title;not null" json:"title"`
	Description     string     `gorm:"type:text;column:description" json:"description"`
	Diagnosis       string     `gorm:"type:text;column:diagnosis" json:"diagnosis"`
	Treatment       string     `gorm:"type:text;column:treatment" json:"treatment"`
	Medications     string     `gorm:"type:text;column:medications" json:"medications"`
	Recommendations string     `gorm:"type:text;column:recommendations" json:"recommendations"`
	FollowUpDate    *time.Time `gorm:"column:follow_up_date" json:"follow_up_date,omitempty"`
	DocumentURL     string     `gorm:"size:512;column:document_url" json:"document_url,omitempty"`
	IsActive        bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	Patient     User         `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor      User         `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID;references:ID" json:"appointment,omitempty"`
}

func (PatientReport) TableName() string {
	return "patient_report"
}
