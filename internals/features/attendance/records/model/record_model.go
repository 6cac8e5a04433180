package model

import (
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
)

// Satu baris per (activity, user); unique index pada pasangan adalah
// penegak "no double check-in" saat dua request balapan. Baris tidak
// pernah dihapus (audit trail), hanya transisi status.
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordActivityID uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_activity_id;uniqueIndex:uq_attendance_record_pair" json:"attendance_record_activity_id"`
	AttendanceRecordUserID     uuid.UUID `gorm:"type:uuid;not null;column:attendance_record_user_id;uniqueIndex:uq_attendance_record_pair" json:"attendance_record_user_id"`

	AttendanceRecordStatus       domain.RecordStatus `gorm:"type:varchar(16);not null;column:attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordCheckInTime  *time.Time          `gorm:"column:attendance_record_check_in_time" json:"attendance_record_check_in_time,omitempty"`
	AttendanceRecordCheckOutTime *time.Time          `gorm:"column:attendance_record_check_out_time" json:"attendance_record_check_out_time,omitempty"`

	AttendanceRecordLocation   *string  `gorm:"column:attendance_record_location" json:"attendance_record_location,omitempty"`
	AttendanceRecordLatitude   *float64 `gorm:"column:attendance_record_latitude" json:"attendance_record_latitude,omitempty"`
	AttendanceRecordLongitude  *float64 `gorm:"column:attendance_record_longitude" json:"attendance_record_longitude,omitempty"`
	AttendanceRecordDeviceInfo *string  `gorm:"column:attendance_record_device_info" json:"attendance_record_device_info,omitempty"`
	AttendanceRecordNotes      *string  `gorm:"column:attendance_record_notes" json:"attendance_record_notes,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }

// HasCheckedIn reports a non-null check-in timestamp.
func (m *AttendanceRecordModel) HasCheckedIn() bool {
	return m.AttendanceRecordCheckInTime != nil
}

// HasCheckedOut reports a non-null check-out timestamp.
func (m *AttendanceRecordModel) HasCheckedOut() bool {
	return m.AttendanceRecordCheckOutTime != nil
}
