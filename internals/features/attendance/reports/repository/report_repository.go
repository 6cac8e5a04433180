package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/reports/model"
)

/* =========================================================
 * PORT
 * ========================================================= */

type ReportRepository interface {
	Insert(ctx context.Context, mdl *model.AttendanceReportModel) error
	// FindByID returns domain.ErrNotFound for unknown ids.
	FindByID(ctx context.Context, reportID uuid.UUID) (*model.AttendanceReportModel, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID, reportType *domain.ReportType, limit, offset int) ([]model.AttendanceReportModel, int64, error)
	Delete(ctx context.Context, reportID uuid.UUID) error
}

/* =========================================================
 * GORM IMPLEMENTATION
 * ========================================================= */

type gormReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &gormReportRepository{db: db}
}

func (r *gormReportRepository) Insert(ctx context.Context, mdl *model.AttendanceReportModel) error {
	return r.db.WithContext(ctx).Create(mdl).Error
}

func (r *gormReportRepository) FindByID(ctx context.Context, reportID uuid.UUID) (*model.AttendanceReportModel, error) {
	var mdl model.AttendanceReportModel
	err := r.db.WithContext(ctx).
		Where("attendance_report_id = ?", reportID).
		Take(&mdl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mdl, nil
}

func (r *gormReportRepository) ListByActivity(ctx context.Context, activityID uuid.UUID, reportType *domain.ReportType, limit, offset int) ([]model.AttendanceReportModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceReportModel{}).
		Where("attendance_report_activity_id = ?", activityID)
	if reportType != nil {
		q = q.Where("attendance_report_type = ?", *reportType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceReportModel
	err := q.Order("attendance_report_generated_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *gormReportRepository) Delete(ctx context.Context, reportID uuid.UUID) error {
	tx := r.db.WithContext(ctx).
		Where("attendance_report_id = ?", reportID).
		Delete(&model.AttendanceReportModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
