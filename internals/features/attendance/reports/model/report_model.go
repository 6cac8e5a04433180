package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"relawanku_backend/internals/features/attendance/domain"
)

// Snapshot yang dibaca ulang, bukan live view: sekali dibuat tidak
// pernah diubah, generate ulang = baris baru. Hanya pembuatnya yang
// boleh menghapus.
type AttendanceReportModel struct {
	AttendanceReportID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_report_id" json:"attendance_report_id"`

	AttendanceReportActivityID  uuid.UUID `gorm:"type:uuid;not null;column:attendance_report_activity_id;index" json:"attendance_report_activity_id"`
	AttendanceReportGeneratedBy uuid.UUID `gorm:"type:uuid;not null;column:attendance_report_generated_by" json:"attendance_report_generated_by"`

	AttendanceReportType    domain.ReportType `gorm:"type:varchar(24);not null;column:attendance_report_type" json:"attendance_report_type"`
	AttendanceReportFilters datatypes.JSON    `gorm:"column:attendance_report_filters" json:"attendance_report_filters,omitempty"`
	AttendanceReportContent datatypes.JSON    `gorm:"not null;column:attendance_report_content" json:"attendance_report_content"`

	AttendanceReportGeneratedAt time.Time `gorm:"column:attendance_report_generated_at;autoCreateTime" json:"attendance_report_generated_at"`
}

func (AttendanceReportModel) TableName() string { return "attendance_reports" }
