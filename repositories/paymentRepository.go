package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"MediClaim/cache"
	"MediClaim/models"
	"MediClaim/utils"
)

// PaymentFilter narrows List results; zero fields are ignored. PatientID
// scopes payments to claims the patient owns.
type PaymentFilter struct {
	ClaimID   uint
	PatientID string
	Status    models.PaymentStatus
	Page      utils.Pagination
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]models.Payment, int64, error)
	Update(ctx context.Context, payment *models.Payment) error
	HasActivePayment(ctx context.Context, claimID uint) (bool, error)
	Complete(ctx context.Context, payment *models.Payment, claim *models.Claim) error
}

type paymentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPaymentRepository(db *gorm.DB, cache *cache.Cache) PaymentRepository {
	return &paymentRepository{db: db, cache: cache}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var payment models.Payment
	err := r.db.WithContext(ctx).
		Preload("Claim").
		Preload("ProcessedBy", selectUserSummary).
		First(&payment, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter) ([]models.Payment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.ClaimID != 0 {
		query = query.Where("claim_id = ?", filter.ClaimID)
	}
	if filter.PatientID != "" {
		query = query.Joins("JOIN claim ON claim.id = payment.claim_id").
			Where("claim.patient_id = ?", filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("payment.status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	err := query.
		Preload("Claim").
		Preload("ProcessedBy", selectUserSummary).
		Order("payment.created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

// HasActivePayment reports whether the claim already carries a payment that
// is not FAILED or CANCELLED.
func (r *paymentRepository) HasActivePayment(ctx context.Context, claimID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("claim_id = ? AND status NOT IN ?", claimID,
			[]models.PaymentStatus{models.PaymentFailed, models.PaymentCancelled}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active payments: %w", err)
	}
	return count > 0, nil
}

// Complete persists the finished payment and flips its claim to PAID in a
// single transaction; either both rows commit or neither does.
func (r *paymentRepository) Complete(ctx context.Context, payment *models.Payment, claim *models.Claim) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return fmt.Errorf("failed to update payment: %w", err)
		}
		if err := tx.Save(claim).Error; err != nil {
			return fmt.Errorf("failed to update claim: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.cache.Delete(ctx, fmt.Sprintf("claim_cache:%d", claim.ID))
}
