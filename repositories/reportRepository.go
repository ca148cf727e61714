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
	ReportCacheExpiry = 24 * time.Hour
)

// ReportFilter narrows List results; zero fields are ignored.
type ReportFilter struct {
	PatientID     string
	DoctorID      string
	AppointmentID uint
	ReportType    models.ReportType
	Page          utils.Pagination
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.PatientReport) error
	GetByID(ctx context.Context, id uint) (*models.PatientReport, error)
	List(ctx context.Context, filter ReportFilter) ([]models.PatientReport, int64, error)
	Update(ctx context.Context, report *models.PatientReport) error
	Delete(ctx context.Context, id uint) error
	AttachmentCount(ctx context.Context, reportID uint) (int64, error)
}

type reportRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReportRepository(db *gorm.DB, cache *cache.Cache) ReportRepository {
	return &reportRepository{db: db, cache: cache}
}

func (r *reportRepository) Create(ctx context.Context, report *models.PatientReport) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create patient report: %w", err)
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.PatientReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.cacheKey(id)
	var cached models.PatientReport
	if hit, err := r.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("Failed to get report from cache: %v", err)
	}

	var report models.PatientReport
	err := r.db.WithContext(ctx).
		Preload("Patient", selectUserSummary).
		Preload("Doctor", selectUserSummary).
		First(&report, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient report: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, report, ReportCacheExpiry); err != nil {
		log.Printf("Failed to set report in cache: %v", err)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, filter ReportFilter) ([]models.PatientReport, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.PatientReport{}).Where("is_active = ?", true)
	if filter.PatientID != "" {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query = query.Where("doctor_id = ?", filter.DoctorID)
	}
	if filter.AppointmentID != 0 {
		query = query.Where("appointment_id = ?", filter.AppointmentID)
	}
	if filter.ReportType != "" {
		query = query.Where("report_type = ?", filter.ReportType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count patient reports: %w", err)
	}

	var reports []models.PatientReport
	err := query.
		Preload("Patient", selectUserSummary).
		Preload("Doctor", selectUserSummary).
		Order("created_at DESC").
		Offset(filter.Page.Offset()).
		Limit(filter.Page.Limit).
		Find(&reports).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patient reports: %w", err)
	}
	return reports, total, nil
}

func (r *reportRepository) Update(ctx context.Context, report *models.PatientReport) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to update patient report: %w", err)
	}
	return r.cache.Delete(ctx, r.cacheKey(report.ID))
}

func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.PatientReport{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete patient report: %w", err)
	}
	return r.cache.Delete(ctx, r.cacheKey(id))
}

// AttachmentCount reports how many claims currently reference the report.
func (r *reportRepository) AttachmentCount(ctx context.Context, reportID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ClaimReport{}).
		Where("report_id = ?", reportID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count report attachments: %w", err)
	}
	return count, nil
}

func (r *reportRepository) cacheKey(id uint) string {
	return fmt.Sprintf("report_cache:%d", id)
}
