package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"relawanku_backend/internals/features/attendance/domain"
)

/* =========================================================
 * PORT
 * ========================================================= */

// RecordRow is an attendance record joined with the owning activity's
// scheduled start; every aggregation buckets on that instant, never on
// the check-in time.
type RecordRow struct {
	ActivityID    uuid.UUID           `gorm:"column:attendance_record_activity_id"`
	UserID        uuid.UUID           `gorm:"column:attendance_record_user_id"`
	Status        domain.RecordStatus `gorm:"column:attendance_record_status"`
	CheckInTime   *time.Time          `gorm:"column:attendance_record_check_in_time"`
	CheckOutTime  *time.Time          `gorm:"column:attendance_record_check_out_time"`
	ActivityStart time.Time           `gorm:"column:activity_start_time"`
}

// RangeFilter scopes aggregation reads. ActivityStatus defaults to
// completed at the service layer.
type RangeFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	ActivityStatus domain.ActivityStatus
}

type StatsReader interface {
	RowsForUser(ctx context.Context, userID uuid.UUID, f RangeFilter) ([]RecordRow, error)
	RowsForActivity(ctx context.Context, activityID uuid.UUID) ([]RecordRow, error)
	RowsAll(ctx context.Context, f RangeFilter) ([]RecordRow, error)
}

/* =========================================================
 * GORM IMPLEMENTATION
 * ========================================================= */

type gormStatsReader struct {
	db *gorm.DB
}

func NewStatsReader(db *gorm.DB) StatsReader {
	return &gormStatsReader{db: db}
}

func (r *gormStatsReader) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("attendance_records").
		Select(`attendance_record_activity_id, attendance_record_user_id,
		        attendance_record_status, attendance_record_check_in_time,
		        attendance_record_check_out_time, activities.activity_start_time`).
		Joins("JOIN activities ON activities.activity_id = attendance_records.attendance_record_activity_id")
}

func applyRange(q *gorm.DB, f RangeFilter) *gorm.DB {
	if f.ActivityStatus != "" {
		q = q.Where("activities.activity_status = ?", f.ActivityStatus)
	}
	if f.StartDate != nil {
		q = q.Where("activities.activity_start_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("activities.activity_start_time <= ?", *f.EndDate)
	}
	return q
}

func (r *gormStatsReader) RowsForUser(ctx context.Context, userID uuid.UUID, f RangeFilter) ([]RecordRow, error) {
	var rows []RecordRow
	err := applyRange(r.base(ctx), f).
		Where("attendance_record_user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}

func (r *gormStatsReader) RowsForActivity(ctx context.Context, activityID uuid.UUID) ([]RecordRow, error) {
	var rows []RecordRow
	err := r.base(ctx).
		Where("attendance_record_activity_id = ?", activityID).
		Scan(&rows).Error
	return rows, err
}

func (r *gormStatsReader) RowsAll(ctx context.Context, f RangeFilter) ([]RecordRow, error) {
	var rows []RecordRow
	err := applyRange(r.base(ctx), f).Scan(&rows).Error
	return rows, err
}
