package repositories

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"MediClaim/cache"
	"MediClaim/models"
	"MediClaim/utils"
)

const (
	ClaimCacheExpiry = 24 * time.Hour
)

// ClaimFilter narrows List results; zero fields are ignored.
type ClaimFilter struct {
	PatientID string
	DoctorID  string
	Status    models.ClaimStatus
	Page      utils.Pagination
}

type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id uint) (*models.Claim, error)
	List(ctx context.Context, filter ClaimFilter) ([]models.Claim, int64, error)
	Update(ctx context.Context, claim *models.Claim) error
	Delete(ctx context.Context, id uint) error
	GetAttachment(ctx context.Context, claimID, reportID uint) (*models.ClaimReport, error)
	CreateAttachment(ctx context.Context, attachment *models.ClaimReport) error
	DeleteAttachment(ctx context.Context, claimID, reportID uint) error
	InvalidateCache(ctx context.Context, id uint) error
}

type claimRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewClaimRepository(db *gorm.DB, cache *cache.Cache) ClaimRepository {
	return &claimRepository{db: db, cache: cache}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if err := r.db.WithContext(ctx).Create(claim).Error; err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}
	return nil
}

func (r *claimRepository) GetByID(ctx context.Context, id uint) (*models.Claim, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.cacheKey(id)
	var cached models.Claim
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("Failed to get claim from cache: %v", err)
	}

	var claim models.Claim
	err := r.db.WithContext(ctx).
		Preload("Patient", selectUserSummary).
		Preload("Doctor", selectUserSummary).
		Preload("Reports.Report").
		First(&claim, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, claim, ClaimCacheExpiry); err != nil {
		log.Printf("Failed to set claim in cache: %v", err)
	}
	return &claim, nil
}

func (r *claimRepository) List(ctx context.Context, filter ClaimFilter) ([]models.Claim, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Claim{})
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count claims: %w", err)
	}

	var claims []models.Claim
	err := query.
		Preload("Patient", selectUserSummary).
		Preload("Doctor", selectUserSummary).
		Order("created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&claims).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list claims: %w", err)
	}
	return claims, total, nil
}

func (r *claimRepository) Update(ctx context.Context, claim *models.Claim) error {
	if err := r.db.WithContext(ctx).Save(claim).Error; err != nil {
		return fmt.Errorf("failed to update claim: %w", err)
	}
	return r.InvalidateCache(ctx, claim.ID)
}

func (r *claimRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Claim{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete claim: %w", err)
	}
	return r.InvalidateCache(ctx, id)
}

func (r *claimRepository) GetAttachment(ctx context.Context, claimID, reportID uint) (*models.ClaimReport, error) {
	var attachment models.ClaimReport
	err := r.db.WithContext(ctx).
		Where("claim_id = ? AND report_id = ?", claimID, reportID).
		First(&attachment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim attachment: %w", err)
	}
	return &attachment, nil
}

func (r *claimRepository) CreateAttachment(ctx context.Context, attachment *models.ClaimReport) error {
	if err := r.db.WithContext(ctx).Create(attachment).Error; err != nil {
		return fmt.Errorf("failed to attach report to claim: %w", err)
	}
	return r.InvalidateCache(ctx, attachment.ClaimID)
}

func (r *claimRepository) DeleteAttachment(ctx context.Context, claimID, reportID uint) error {
	err := r.db.WithContext(ctx).
		Where("claim_id = ? AND report_id = ?", claimID, reportID).
		Delete(&models.ClaimReport{}).Error
	if err != nil {
		return fmt.Errorf("failed to detach report from claim: %w", err)
	}
	return r.InvalidateCache(ctx, claimID)
}

func (r *claimRepository) InvalidateCache(ctx context.Context, id uint) error {
	return r.cache.Delete(ctx, r.cacheKey(id))
}

func (r *claimRepository) cacheKey(id uint) string {
	return fmt.Sprintf("claim_cache:%d", id)
}
