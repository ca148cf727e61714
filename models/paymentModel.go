package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a claim disbursement.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Active reports whether the payment still occupies its claim; FAILED and
// CANCELLED payments free the claim for another attempt.
func (s PaymentStatus) Active() bool {
	return s != PaymentFailed && s != PaymentCancelled
}

// Payment is a bank-initiated disbursement against an approved claim.
// Completing it marks the parent claim PAID in the same transaction.
type Payment struct {
	ID            uint            `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	ClaimID       uint            `gorm:"column:claim_id;not null;index" json:"claim_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);column:amount;not null" json:"amount"`
	Status        PaymentStatus   `gorm:"size:20;column:status;not null;index" json:"status"`
	PaymentMethod string          `gorm:"size:50;column:payment_method" json:"payment_method"`
	TransactionID string          `gorm:"size:64;column:transaction_id;index" json:"transaction_id"`
	Notes         string          `gorm:"type:text;column:notes" json:"notes,omitempty"`
	FailureReason string          `gorm:"type:text;column:failure_reason" json:"failure_reason,omitempty"`
	ProcessedByID string          `gorm:"column:processed_by_id;not null;index" json:"processed_by_id"`
	PaymentDate   *time.Time      `gorm:"column:payment_date" json:"payment_date,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;column:created_at" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`

	Claim       Claim `gorm:"foreignKey:ClaimID;references:ID" json:"claim"`
	ProcessedBy User  `gorm:"foreignKey:ProcessedByID;references:ID" json:"processed_by"`
}

func (Payment) TableName() string {
	return "payment"
}
