package models

import (
	"time"
)

// DocumentType classifies an uploaded binary document.
type DocumentType string

const (
	DocumentMedicalReport DocumentType = "MEDICAL_REPORT"
	DocumentPrescription  DocumentType = "PRESCRIPTION"
	DocumentScanReport    DocumentType = "SCAN_REPORT"
)

// ValidDocumentType reports whether t is a known document type.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentMedicalReport, DocumentPrescription, DocumentScanReport:
		return true
	}
	return false
}

// Document is the metadata record for an uploaded file. The binary itself
// lives in the object store under StorageKey.
type Document struct {
	ID            uint         `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Type          DocumentType `gorm:"size:30;column:type;not null" json:"type"`
	Filename      string       `gorm:"size:255;column:filename;not null" json:"filename"`
	OriginalName  string       `gorm:"size:255;column:original_name;not null" json:"original_name"`
	URL           string       `gorm:"size:512;column:url" json:"url"`
	StorageKey    string       `gorm:"size:64;column:storage_key;not null;unique" json:"-"`
	Size          int64        `gorm:"column:size" json:"size"`
	MimeType      string       `gorm:"size:100;column:mime_type" json:"mime_type"`
	AppointmentID *uint        `gorm:"column:appointment_id;index" json:"appointment_id,omitempty"`
	ClaimID       *uint        `gorm:"column:claim_id;index" json:"claim_id,omitempty"`
	UploadedByID  string       `gorm:"column:uploaded_by_id;not null;index" json:"uploaded_by_id"`
	CreatedAt     time.Time    `gorm:"autoCreateTime;column:created_at" json:"created_at"`

	Appointment *Appointment `gorm:"foreignKey:AppointmentID;references:ID" json:"-"`
	Claim       *Claim       `gorm:"foreignKey:ClaimID;references:ID" json:"-"`
	UploadedBy  User         `gorm:"foreignKey:UploadedByID;references:ID" json:"-"`
}

func (Document) TableName() string {
	return "document"
}
