package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"relawanku_backend/internals/features/attendance/confirmations/model"
	"relawanku_backend/internals/features/attendance/domain"
)

/* =========================================================
 * PORT
 * ========================================================= */

// ActivityFilter narrows ListByUser by the owning activity.
type ActivityFilter struct {
	ActivityStatus *domain.ActivityStatus
	StartDate      *time.Time
	EndDate        *time.Time
}

// UserConfirmationRow is a confirmation joined with activity metadata.
type UserConfirmationRow struct {
	Confirmation      model.AttendanceConfirmationModel
	ActivityTitle     string
	ActivityStatus    string
	ActivityStartTime time.Time
	ActivityEndTime   time.Time
}

type ConfirmationRepository interface {
	// Upsert menimpa status/notes untuk pasangan yang sudah ada,
	// identitas baris tidak pernah berubah.
	Upsert(ctx context.Context, mdl *model.AttendanceConfirmationModel) error
	ListByActivity(ctx context.Context, activityID uuid.UUID, status *domain.ConfirmationStatus, limit, offset int) ([]model.AttendanceConfirmationModel, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *domain.ConfirmationStatus, af ActivityFilter, limit, offset int) ([]UserConfirmationRow, int64, error)
	CountByStatus(ctx context.Context, activityID uuid.UUID) (map[domain.ConfirmationStatus]int64, error)
	PendingUserIDs(ctx context.Context, activityID uuid.UUID, limit int) ([]uuid.UUID, error)
}

/* =========================================================
 * GORM IMPLEMENTATION
 * ========================================================= */

type gormConfirmationRepository struct {
	db *gorm.DB
}

func NewConfirmationRepository(db *gorm.DB) ConfirmationRepository {
	return &gormConfirmationRepository{db: db}
}

func (r *gormConfirmationRepository) Upsert(ctx context.Context, mdl *model.AttendanceConfirmationModel) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_confirmation_activity_id"},
				{Name: "attendance_confirmation_user_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"attendance_confirmation_status":     mdl.AttendanceConfirmationStatus,
				"attendance_confirmation_notes":      mdl.AttendanceConfirmationNotes,
				"attendance_confirmation_updated_at": now,
			}),
		}).
		Clauses(clause.Returning{}).
		Create(mdl).Error
}

func (r *gormConfirmationRepository) ListByActivity(ctx context.Context, activityID uuid.UUID, status *domain.ConfirmationStatus, limit, offset int) ([]model.AttendanceConfirmationModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceConfirmationModel{}).
		Where("attendance_confirmation_activity_id = ?", activityID)
	if status != nil {
		q = q.Where("attendance_confirmation_status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceConfirmationModel
	err := q.Order("attendance_confirmation_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *gormConfirmationRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.ConfirmationStatus, af ActivityFilter, limit, offset int) ([]UserConfirmationRow, int64, error) {
	base := r.db.WithContext(ctx).Table("attendance_confirmations").
		Joins("JOIN activities ON activities.activity_id = attendance_confirmations.attendance_confirmation_activity_id").
		Where("attendance_confirmation_user_id = ?", userID)
	if status != nil {
		base = base.Where("attendance_confirmation_status = ?", *status)
	}
	if af.ActivityStatus != nil {
		base = base.Where("activities.activity_status = ?", *af.ActivityStatus)
	}
	if af.StartDate != nil {
		base = base.Where("activities.activity_start_time >= ?", *af.StartDate)
	}
	if af.EndDate != nil {
		base = base.Where("activities.activity_start_time <= ?", *af.EndDate)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	type flatRow struct {
		model.AttendanceConfirmationModel
		ActivityTitle     string    `gorm:"column:activity_title"`
		ActivityStatus    string    `gorm:"column:activity_status"`
		ActivityStartTime time.Time `gorm:"column:activity_start_time"`
		ActivityEndTime   time.Time `gorm:"column:activity_end_time"`
	}
	var flat []flatRow
	err := base.
		Select(`attendance_confirmations.*,
		        activities.activity_title, activities.activity_status,
		        activities.activity_start_time, activities.activity_end_time`).
		Order("activities.activity_start_time DESC").
		Limit(limit).Offset(offset).
		Scan(&flat).Error
	if err != nil {
		return nil, 0, err
	}

	rows := make([]UserConfirmationRow, 0, len(flat))
	for _, f := range flat {
		rows = append(rows, UserConfirmationRow{
			Confirmation:      f.AttendanceConfirmationModel,
			ActivityTitle:     f.ActivityTitle,
			ActivityStatus:    f.ActivityStatus,
			ActivityStartTime: f.ActivityStartTime,
			ActivityEndTime:   f.ActivityEndTime,
		})
	}
	return rows, total, nil
}

func (r *gormConfirmationRepository) CountByStatus(ctx context.Context, activityID uuid.UUID) (map[domain.ConfirmationStatus]int64, error) {
	type bucket struct {
		Status string `gorm:"column:attendance_confirmation_status"`
		N      int64  `gorm:"column:n"`
	}
	var buckets []bucket
	err := r.db.WithContext(ctx).Model(&model.AttendanceConfirmationModel{}).
		Select("attendance_confirmation_status, COUNT(*) AS n").
		Where("attendance_confirmation_activity_id = ?", activityID).
		Group("attendance_confirmation_status").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ConfirmationStatus]int64, len(buckets))
	for _, b := range buckets {
		out[domain.ConfirmationStatus(b.Status)] = b.N
	}
	return out, nil
}

func (r *gormConfirmationRepository) PendingUserIDs(ctx context.Context, activityID uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.AttendanceConfirmationModel{}).
		Where("attendance_confirmation_activity_id = ? AND attendance_confirmation_status = ?",
			activityID, domain.ConfirmationPending).
		Limit(limit).
		Pluck("attendance_confirmation_user_id", &ids).Error
	return ids, err
}
