package dto

import (
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	m "relawanku_backend/internals/features/attendance/records/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// CheckInRequest (JSON) — semua bukti opsional.
type CheckInRequest struct {
	Location   *string  `json:"location" validate:"omitempty,max=255"`
	Latitude   *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude  *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	DeviceInfo *string  `json:"device_info" validate:"omitempty,max=255"`
	Notes      *string  `json:"notes" validate:"omitempty,max=500"`
}

type CheckOutRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=500"`
}

type MarkAbsenceRequest struct {
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
	IsExcused bool    `json:"is_excused"`
}

// Filter / List (query) — opsi eksplisit, selain ini ditolak parser.
type ListRecordsRequest struct {
	Status    *domain.RecordStatus `query:"status" validate:"omitempty,oneof=present late early_leave partial absent excused no_show"`
	StartDate *string              `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string              `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type RecordResponse struct {
	AttendanceRecordID           uuid.UUID           `json:"attendance_record_id"`
	AttendanceRecordActivityID   uuid.UUID           `json:"attendance_record_activity_id"`
	AttendanceRecordUserID       uuid.UUID           `json:"attendance_record_user_id"`
	AttendanceRecordStatus       domain.RecordStatus `json:"attendance_record_status"`
	AttendanceRecordCheckInTime  *time.Time          `json:"attendance_record_check_in_time,omitempty"`
	AttendanceRecordCheckOutTime *time.Time          `json:"attendance_record_check_out_time,omitempty"`
	AttendanceRecordLocation     *string             `json:"attendance_record_location,omitempty"`
	AttendanceRecordLatitude     *float64            `json:"attendance_record_latitude,omitempty"`
	AttendanceRecordLongitude    *float64            `json:"attendance_record_longitude,omitempty"`
	AttendanceRecordDeviceInfo   *string             `json:"attendance_record_device_info,omitempty"`
	AttendanceRecordNotes        *string             `json:"attendance_record_notes,omitempty"`
	AttendanceRecordCreatedAt    time.Time           `json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt    *time.Time          `json:"attendance_record_updated_at,omitempty"`
}

type NoShowSweepResponse struct {
	Marked int `json:"marked"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func FromRecordModel(mdl m.AttendanceRecordModel) RecordResponse {
	return RecordResponse{
		AttendanceRecordID:           mdl.AttendanceRecordID,
		AttendanceRecordActivityID:   mdl.AttendanceRecordActivityID,
		AttendanceRecordUserID:       mdl.AttendanceRecordUserID,
		AttendanceRecordStatus:       mdl.AttendanceRecordStatus,
		AttendanceRecordCheckInTime:  mdl.AttendanceRecordCheckInTime,
		AttendanceRecordCheckOutTime: mdl.AttendanceRecordCheckOutTime,
		AttendanceRecordLocation:     mdl.AttendanceRecordLocation,
		AttendanceRecordLatitude:     mdl.AttendanceRecordLatitude,
		AttendanceRecordLongitude:    mdl.AttendanceRecordLongitude,
		AttendanceRecordDeviceInfo:   mdl.AttendanceRecordDeviceInfo,
		AttendanceRecordNotes:        mdl.AttendanceRecordNotes,
		AttendanceRecordCreatedAt:    mdl.AttendanceRecordCreatedAt,
		AttendanceRecordUpdatedAt:    mdl.AttendanceRecordUpdatedAt,
	}
}

func FromRecordModels(mdls []m.AttendanceRecordModel) []RecordResponse {
	out := make([]RecordResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, FromRecordModel(mdl))
	}
	return out
}

// ParseDateRange mengubah string tanggal query jadi time range
// inklusif (EndDate sampai akhir hari).
func (r ListRecordsRequest) ParseDateRange() (start, end *time.Time) {
	if r.StartDate != nil {
		if t, err := time.Parse("2006-01-02", *r.StartDate); err == nil {
			start = &t
		}
	}
	if r.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *r.EndDate); err == nil {
			e := t.Add(24*time.Hour - time.Nanosecond)
			end = &e
		}
	}
	return start, end
}
