package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MediClaim/models"
	"MediClaim/policy"
	"MediClaim/repositories"
	"MediClaim/utils"
	"MediClaim/workflow"
)

// CreatePaymentRequest is the payload for a bank initiating a disbursement.
type CreatePaymentRequest struct {
	ClaimID       uint            `json:"claim_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
}

// UpdatePaymentRequest is the PATCH payload moving a payment through its
// lifecycle.
type UpdatePaymentRequest struct {
	Status        models.PaymentStatus `json:"status"`
	FailureReason string               `json:"failure_reason"`
	Notes         *string              `json:"notes"`
}

// Locker guards payment completion per claim so two tellers cannot finish
// the same disbursement concurrently.
type Locker interface {
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, value string) error
}

type PaymentService struct {
	payments repositories.PaymentRepository
	claims   repositories.ClaimRepository
	users    repositories.UserRepository
	locks    Locker
}

func NewPaymentService(payments repositories.PaymentRepository, claims repositories.ClaimRepository, users repositories.UserRepository, locks Locker) *PaymentService {
	return &PaymentService{payments: payments, claims: claims, users: users, locks: locks}
}

// Create opens a PROCESSING payment against an approved claim. A claim can
// carry at most one payment that has not failed or been cancelled.
func (s *PaymentService) Create(ctx context.Context, p policy.Principal, req CreatePaymentRequest) (*models.Payment, error) {
	if err := policy.Decide(p, policy.PaymentCreate, policy.Facts{}); err != nil {
		return nil, err
	}

	claim, err := s.claims.GetByID(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, notFound("claim")
	}
	if claim.Status != models.ClaimApproved && claim.Status != models.ClaimPaid {
		return nil, invalidf("payments can only be created for approved claims")
	}
	if !req.Amount.IsPositive() {
		return nil, invalidf("payment amount must be positive")
	}

	active, err := s.payments.HasActivePayment(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, invalidf("claim already has an active payment")
	}

	payment := &models.Payment{
		ClaimID:       req.ClaimID,
		Amount:        req.Amount,
		Status:        models.PaymentProcessing,
		PaymentMethod: req.PaymentMethod,
		TransactionID: uuid.New().String(),
		Notes:         req.Notes,
		ProcessedByID: p.UserID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, p policy.Principal, id uint) (*models.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, notFound("payment")
	}
	err = policy.Decide(p, policy.PaymentView, policy.Facts{
		OwnerPatientID: payment.Claim.PatientID,
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// List scopes payments to the caller's claims for patients; insurers and
// banks see everything, other roles nothing.
func (s *PaymentService) List(ctx context.Context, p policy.Principal, filter repositories.PaymentFilter) ([]models.Payment, int64, error) {
	switch p.Role {
	case models.RolePatient:
		filter.PatientID = p.UserID
	case models.RoleInsurance, models.RoleBank:
	default:
		if err := policy.Decide(p, policy.PaymentView, policy.Facts{}); err != nil {
			return nil, 0, err
		}
	}
	return s.payments.List(ctx, filter)
}

// UpdateStatus moves a payment through its lifecycle. Completing one flips
// the parent claim to PAID in the same database transaction, with a redis
// lock around the sequence so two tellers cannot complete it concurrently.
func (s *PaymentService) UpdateStatus(ctx context.Context, p policy.Principal, id uint, req UpdatePaymentRequest) (*models.Payment, error) {
	if err := policy.Decide(p, policy.PaymentUpdate, policy.Facts{}); err != nil {
		return nil, err
	}

	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, notFound("payment")
	}

	if err := workflow.Payments.Step(payment.Status, req.Status); err != nil {
		return nil, invalidf("%v", err)
	}

	if req.Notes != nil {
		payment.Notes = *req.Notes
	}

	switch req.Status {
	case models.PaymentCompleted:
		if err := s.complete(ctx, payment); err != nil {
			return nil, err
		}
	case models.PaymentFailed:
		payment.Status = models.PaymentFailed
		payment.FailureReason = req.FailureReason
		if err := s.payments.Update(ctx, payment); err != nil {
			return nil, err
		}
	default:
		payment.Status = req.Status
		if err := s.payments.Update(ctx, payment); err != nil {
			return nil, err
		}
	}
	return payment, nil
}

func (s *PaymentService) complete(ctx context.Context, payment *models.Payment) error {
	lockKey := fmt.Sprintf("payment_lock:%d", payment.ClaimID)
	lockValue := uuid.New().String()
	locked, err := s.locks.Acquire(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire payment lock: %w", err)
	}
	if !locked {
		return invalidf("another update for this claim's payment is in progress")
	}
	defer func() {
		if err := s.locks.Release(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release payment lock: %v", err)
		}
	}()

	claim, err := s.claims.GetByID(ctx, payment.ClaimID)
	if err != nil {
		return err
	}
	if claim == nil {
		return notFound("claim")
	}

	now := time.Now()
	payment.Status = models.PaymentCompleted
	payment.PaymentDate = &now
	if claim.Status == models.ClaimApproved {
		claim.Status = models.ClaimPaid
		claim.PaidAt = &now
	}

	if err := s.payments.Complete(ctx, payment, claim); err != nil {
		return err
	}

	s.notifyCompletion(ctx, claim, payment.Amount)
	return nil
}

func (s *PaymentService) notifyCompletion(ctx context.Context, claim *models.Claim, amount decimal.Decimal) {
	patient, err := s.users.GetUserByID(ctx, claim.PatientID)
	if err != nil || patient == nil {
		log.Printf("Failed to load patient %s for payment notification: %v", claim.PatientID, err)
		return
	}
	go func(email, number string) {
		if err := utils.SendPaymentCompletedEmail(email, number, amount); err != nil {
			log.Printf("Failed to send payment completion email: %v", err)
		}
	}(patient.Email, claim.ClaimNumber)
}
