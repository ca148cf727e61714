package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClaimStatus is the lifecycle state of a reimbursement claim.
type ClaimStatus string

const (
	ClaimDraft       ClaimStatus = "DRAFT"
	ClaimSubmitted   ClaimStatus = "SUBMITTED"
	ClaimUnderReview ClaimStatus = "UNDER_REVIEW"
	ClaimApproved    ClaimStatus = "APPROVED"
	ClaimRejected    ClaimStatus = "REJECTED"
	ClaimPaid        ClaimStatus = "PAID"
)

// Claim is a patient's request for reimbursement. Money columns are stored as
// numeric and handled as decimals end to end.
type Claim struct {
	ID              uint             `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClaimNumber     string           `gorm:"size:30;column:claim_number;not null;unique;index" json:"claim_number"`
	PatientID       string           `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        *string          `gorm:"column:doctor_id;index" json:"doctor_id,omitempty"`
	Diagnosis       string           `gorm:"type:text;column:diagnosis;not null" json:"diagnosis"`
	TreatmentDate   time.Time        `gorm:"column:treatment_date;not null" json:"treatment_date"`
	ClaimAmount     decimal.Decimal  `gorm:"type:numeric(12,2);column:claim_amount;not null" json:"claim_amount"`
	ApprovedAmount  *decimal.Decimal `gorm:"type:numeric(12,2);column:approved_amount" json:"approved_amount,omitempty"`
	Status          ClaimStatus      `gorm:"size:20;column:status;not null;index" json:"status"`
	SubmittedAt     *time.Time       `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time       `gorm:"column:approved_at" json:"approved_at,omitempty"`
	RejectedAt      *time.Time       `gorm:"column:rejected_at" json:"rejected_at,omitempty"`
	PaidAt          *time.Time       `gorm:"column:paid_at" json:"paid_at,omitempty"`
	RejectionReason string           `gorm:"type:text;column:rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt       time.Time        `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	Patient  User          `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor   *User         `gorm:"foreignKey:DoctorID;references:ID" json:"doctor,omitempty"`
	Reports  []ClaimReport `gorm:"foreignKey:ClaimID;references:ID" json:"reports,omitempty"`
	Payments []Payment     `gorm:"foreignKey:ClaimID;references:ID" json:"payments,omitempty"`
}

func (Claim) TableName() string {
	return "claim"
}

// ClaimReport attaches a PatientReport to a Claim as evidence. The pair is
// unique so the same report cannot be attached twice.
type ClaimReport struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClaimID      uint      `gorm:"column:claim_id;not null;uniqueIndex:idx_claim_report" json:"claim_id"`
	ReportID     uint      `gorm:"column:report_id;not null;uniqueIndex:idx_claim_report" json:"report_id"`
	AttachedByID string    `gorm:"column:attached_by_id;not null" json:"attached_by_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime;column:created_at" json:"created_at"`

	Claim  Claim         `gorm:"foreignKey:ClaimID;references:ID" json:"-"`
	Report PatientReport `gorm:"foreignKey:ReportID;references:ID" json:"report"`
}

func (ClaimReport) TableName() string {
	return "claim_report"
}
