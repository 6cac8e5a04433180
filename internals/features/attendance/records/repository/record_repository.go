package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/records/model"
)

/* =========================================================
 * PORT
 * ========================================================= */

// ListFilter narrows record listings. Every recognized option is a
// field here; anything else never reaches the query.
type ListFilter struct {
	Status    *domain.RecordStatus
	StartDate *time.Time // on the owning activity's scheduled start
	EndDate   *time.Time
}

type RecordRepository interface {
	// Insert creates the row for a pair. The unique index on
	// (activity_id, user_id) decides races: the loser gets
	// domain.ErrConflict, never a second row.
	Insert(ctx context.Context, mdl *model.AttendanceRecordModel) error
	// FindByPair returns domain.ErrNotFound when the pair has no row.
	FindByPair(ctx context.Context, activityID, userID uuid.UUID) (*model.AttendanceRecordModel, error)
	// CompleteCheckOut sets check-out time and status only if the row
	// still has no check-out (compare-and-set). A lost race returns
	// domain.ErrConflict.
	CompleteCheckOut(ctx context.Context, recordID uuid.UUID, checkOut time.Time, status domain.RecordStatus) (*model.AttendanceRecordModel, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID, f ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, f ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error)
	// CountPresent tallies rows whose status counts as present, for
	// the directory's live counter.
	CountPresent(ctx context.Context, activityID uuid.UUID) (int, error)
	// NoShowCandidates lists roster members with a confirmed RSVP and
	// no attendance row yet.
	NoShowCandidates(ctx context.Context, activityID uuid.UUID) ([]uuid.UUID, error)
	// InsertIgnoreDuplicates bulk-creates terminal rows, skipping
	// pairs that already have one. Returns how many were created.
	InsertIgnoreDuplicates(ctx context.Context, mdls []model.AttendanceRecordModel) (int, error)
}

/* =========================================================
 * GORM IMPLEMENTATION
 * ========================================================= */

type gormRecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &gormRecordRepository{db: db}
}

func (r *gormRecordRepository) Insert(ctx context.Context, mdl *model.AttendanceRecordModel) error {
	err := r.db.WithContext(ctx).Create(mdl).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *gormRecordRepository) FindByPair(ctx context.Context, activityID, userID uuid.UUID) (*model.AttendanceRecordModel, error) {
	var mdl model.AttendanceRecordModel
	err := r.db.WithContext(ctx).
		Where("attendance_record_activity_id = ? AND attendance_record_user_id = ?", activityID, userID).
		Take(&mdl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mdl, nil
}

func (r *gormRecordRepository) CompleteCheckOut(ctx context.Context, recordID uuid.UUID, checkOut time.Time, status domain.RecordStatus) (*model.AttendanceRecordModel, error) {
	// RETURNING mengisi updated lewat Model; jangan tambah Scan di
	// belakang Updates, itu menjalankan SELECT kedua dengan WHERE yang
	// sudah tidak match setelah check_out_time terisi.
	var updated model.AttendanceRecordModel
	tx := r.db.WithContext(ctx).Model(&updated).
		Clauses(clause.Returning{}).
		Where("attendance_record_id = ? AND attendance_record_check_out_time IS NULL", recordID).
		Updates(map[string]interface{}{
			"attendance_record_check_out_time": checkOut,
			"attendance_record_status":         status,
			"attendance_record_updated_at":     time.Now(),
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		// Baris sudah punya check-out (double check-out kalah balapan).
		return nil, domain.ErrConflict
	}
	return &updated, nil
}

func (r *gormRecordRepository) ListByActivity(ctx context.Context, activityID uuid.UUID, f ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceRecordModel{}).
		Joins("JOIN activities ON activities.activity_id = attendance_records.attendance_record_activity_id").
		Where("attendance_record_activity_id = ?", activityID)
	if f.Status != nil {
		q = q.Where("attendance_record_status = ?", *f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("activities.activity_start_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("activities.activity_start_time <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceRecordModel
	err := q.Order("attendance_record_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *gormRecordRepository) ListByUser(ctx context.Context, userID uuid.UUID, f ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.AttendanceRecordModel{}).
		Joins("JOIN activities ON activities.activity_id = attendance_records.attendance_record_activity_id").
		Where("attendance_record_user_id = ?", userID)
	if f.Status != nil {
		q = q.Where("attendance_record_status = ?", *f.Status)
	}
	if f.StartDate != nil {
		q = q.Where("activities.activity_start_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("activities.activity_start_time <= ?", *f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceRecordModel
	err := q.Order("activities.activity_start_time DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	return rows, total, err
}

func (r *gormRecordRepository) CountPresent(ctx context.Context, activityID uuid.UUID) (int, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_activity_id = ?", activityID).
		Where("attendance_record_status IN ?", []domain.RecordStatus{
			domain.RecordPresent, domain.RecordLate, domain.RecordEarlyLeave, domain.RecordPartial,
		}).
		Count(&n).Error
	return int(n), err
}

func (r *gormRecordRepository) NoShowCandidates(ctx context.Context, activityID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Table("attendance_confirmations").
		Joins(`JOIN activity_participants
		         ON activity_participant_activity_id = attendance_confirmation_activity_id
		        AND activity_participant_user_id = attendance_confirmation_user_id`).
		Joins(`LEFT JOIN attendance_records
		         ON attendance_record_activity_id = attendance_confirmation_activity_id
		        AND attendance_record_user_id = attendance_confirmation_user_id`).
		Where("attendance_confirmation_activity_id = ?", activityID).
		Where("attendance_confirmation_status = ?", domain.ConfirmationConfirmed).
		Where("attendance_record_id IS NULL").
		Pluck("attendance_confirmation_user_id", &ids).Error
	return ids, err
}

func (r *gormRecordRepository) InsertIgnoreDuplicates(ctx context.Context, mdls []model.AttendanceRecordModel) (int, error) {
	if len(mdls) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_activity_id"},
				{Name: "attendance_record_user_id"},
			},
			DoNothing: true,
		}).
		Create(&mdls)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return int(tx.RowsAffected), nil
}
