package service

import (
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/records/model"
)

// Transisi state machine per (activity, user):
//
//	NoRecord → {present, late}            (check-in)
//	{present, late} → {same, early_leave} (check-out, terminal)
//	NoRecord → absent | excused | no_show (terminal, langsung)
//
// Setiap event adalah fungsi eksplisit: record saat ini + event →
// record baru atau rejection bertipe. Tidak ada mutasi field dari
// luar paket ini.

// CheckInData carries the optional evidence a check-in may attach.
type CheckInData struct {
	Location   *string
	Latitude   *float64
	Longitude  *float64
	DeviceInfo *string
	Notes      *string
}

// applyCheckIn builds the initial record. current must be nil: any
// existing row for the pair is a conflict, whatever its status.
func applyCheckIn(current *model.AttendanceRecordModel, activityID, userID uuid.UUID, status domain.RecordStatus, now time.Time, data CheckInData) (*model.AttendanceRecordModel, error) {
	if current != nil {
		return nil, domain.ErrConflict
	}
	t := now
	return &model.AttendanceRecordModel{
		AttendanceRecordActivityID:  activityID,
		AttendanceRecordUserID:      userID,
		AttendanceRecordStatus:      status,
		AttendanceRecordCheckInTime: &t,
		AttendanceRecordLocation:    data.Location,
		AttendanceRecordLatitude:    data.Latitude,
		AttendanceRecordLongitude:   data.Longitude,
		AttendanceRecordDeviceInfo:  data.DeviceInfo,
		AttendanceRecordNotes:       data.Notes,
	}, nil
}

// applyCheckOut closes the record. Reclassification only ever upgrades
// to early_leave; a normal-time check-out keeps the check-in status.
func applyCheckOut(current *model.AttendanceRecordModel, now time.Time, earlyLeave bool) (*model.AttendanceRecordModel, error) {
	if current == nil || !current.HasCheckedIn() {
		return nil, domain.ErrInvalidState
	}
	if current.HasCheckedOut() {
		return nil, domain.ErrConflict
	}
	if now.Before(*current.AttendanceRecordCheckInTime) {
		return nil, domain.ErrInvalidState
	}

	next := *current
	t := now
	next.AttendanceRecordCheckOutTime = &t
	if earlyLeave {
		next.AttendanceRecordStatus = domain.RecordEarlyLeave
	}
	return &next, nil
}

// newAbsence creates a terminal absence record. Only valid for pairs
// with no attendance data at all.
func newAbsence(current *model.AttendanceRecordModel, activityID, userID uuid.UUID, notes *string, isExcused bool) (*model.AttendanceRecordModel, error) {
	if current != nil {
		return nil, domain.ErrConflict
	}
	status := domain.RecordAbsent
	if isExcused {
		status = domain.RecordExcused
	}
	return &model.AttendanceRecordModel{
		AttendanceRecordActivityID: activityID,
		AttendanceRecordUserID:     userID,
		AttendanceRecordStatus:     status,
		AttendanceRecordNotes:      notes,
	}, nil
}

// newNoShow creates the terminal no_show record for a confirmed
// participant who never produced attendance data.
func newNoShow(activityID, userID uuid.UUID) *model.AttendanceRecordModel {
	return &model.AttendanceRecordModel{
		AttendanceRecordActivityID: activityID,
		AttendanceRecordUserID:     userID,
		AttendanceRecordStatus:     domain.RecordNoShow,
	}
}
