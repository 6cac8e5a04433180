package model

import (
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
)

// Satu baris per (activity, user). RSVP berikutnya menimpa status,
// bukan membuat baris baru (unique index pada pasangan).
type AttendanceConfirmationModel struct {
	AttendanceConfirmationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_confirmation_id" json:"attendance_confirmation_id"`

	AttendanceConfirmationActivityID uuid.UUID `gorm:"type:uuid;not null;column:attendance_confirmation_activity_id;uniqueIndex:uq_attendance_confirmation_pair" json:"attendance_confirmation_activity_id"`
	AttendanceConfirmationUserID     uuid.UUID `gorm:"type:uuid;not null;column:attendance_confirmation_user_id;uniqueIndex:uq_attendance_confirmation_pair" json:"attendance_confirmation_user_id"`

	AttendanceConfirmationStatus domain.ConfirmationStatus `gorm:"type:varchar(16);not null;default:'pending';column:attendance_confirmation_status" json:"attendance_confirmation_status"`
	AttendanceConfirmationNotes  *string                   `gorm:"column:attendance_confirmation_notes" json:"attendance_confirmation_notes,omitempty"`

	AttendanceConfirmationCreatedAt time.Time  `gorm:"column:attendance_confirmation_created_at;autoCreateTime" json:"attendance_confirmation_created_at"`
	AttendanceConfirmationUpdatedAt *time.Time `gorm:"column:attendance_confirmation_updated_at;autoUpdateTime" json:"attendance_confirmation_updated_at,omitempty"`
}

func (AttendanceConfirmationModel) TableName() string { return "attendance_confirmations" }
