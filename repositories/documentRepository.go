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

// DocumentFilter narrows List results; zero fields are ignored.
type DocumentFilter struct {
	AppointmentID uint
	ClaimID       uint
	UploadedByID  string
	Page          utils.Pagination
}

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id uint) (*models.Document, error)
	GetByStorageKey(ctx context.Context, key string) (*models.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]models.Document, int64, error)
	Update(ctx context.Context, document *models.Document) error
}

type documentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDocumentRepository(db *gorm.DB, cache *cache.Cache) DocumentRepository {
	return &documentRepository{db: db, cache: cache}
}

func (r *documentRepository) Create(ctx context.Context, document *models.Document) error {
	if err := r.db.WithContext(ctx).Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uint) (*models.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var document models.Document
	err := r.db.WithContext(ctx).First(&document, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &document, nil
}

func (r *documentRepository) GetByStorageKey(ctx context.Context, key string) (*models.Document, error) {
	var document models.Document
	err := r.db.WithContext(ctx).First(&document, "storage_key = ?", key).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document by key: %w", err)
	}
	return &document, nil
}

func (r *documentRepository) List(ctx context.Context, filter DocumentFilter) ([]models.Document, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Document{})
	if filter.AppointmentID != 0 {
		query = query.Where("appointment_id = ?", filter.AppointmentID)
	}
	if filter.ClaimID != 0 {
		query = query.Where("claim_id = ?", filter.ClaimID)
	}
	if filter.UploadedByID != "" {
		query = query.Where("uploaded_by_id = ?", filter.UploadedByID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	var documents []models.Document
	err := query.Order("created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&documents).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, total, nil
}

func (r *documentRepository) Update(ctx context.Context, document *models.Document) error {
	if err := r.db.WithContext(ctx).Save(document).Error; err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}
