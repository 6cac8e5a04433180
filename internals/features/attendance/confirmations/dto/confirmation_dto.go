package dto

import (
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	m "relawanku_backend/internals/features/attendance/confirmations/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// SetConfirmationRequest (JSON) — actor diambil dari token.
type SetConfirmationRequest struct {
	Status domain.ConfirmationStatus `json:"status" validate:"required,oneof=pending confirmed declined maybe"`
	Notes  *string                   `json:"notes" validate:"omitempty,max=500"`
}

// Filter / List (query) — setiap opsi eksplisit, field di luar ini
// tidak dikenali oleh parser.
type ListActivityConfirmationsRequest struct {
	Status *domain.ConfirmationStatus `query:"status" validate:"omitempty,oneof=pending confirmed declined maybe"`
}

type ListUserConfirmationsRequest struct {
	Status         *domain.ConfirmationStatus `query:"status" validate:"omitempty,oneof=pending confirmed declined maybe"`
	ActivityStatus *domain.ActivityStatus     `query:"activity_status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
	StartDate      *string                    `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string                    `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// SendRemindersRequest — kalau UserIDs kosong, target semua PENDING.
type SendRemindersRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"omitempty,max=500"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type ConfirmationResponse struct {
	AttendanceConfirmationID         uuid.UUID                 `json:"attendance_confirmation_id"`
	AttendanceConfirmationActivityID uuid.UUID                 `json:"attendance_confirmation_activity_id"`
	AttendanceConfirmationUserID     uuid.UUID                 `json:"attendance_confirmation_user_id"`
	AttendanceConfirmationStatus     domain.ConfirmationStatus `json:"attendance_confirmation_status"`
	AttendanceConfirmationNotes      *string                   `json:"attendance_confirmation_notes,omitempty"`
	AttendanceConfirmationCreatedAt  time.Time                 `json:"attendance_confirmation_created_at"`
	AttendanceConfirmationUpdatedAt  *time.Time                `json:"attendance_confirmation_updated_at,omitempty"`
}

// UserConfirmationResponse: baris konfirmasi + metadata aktivitas.
type UserConfirmationResponse struct {
	ConfirmationResponse
	ActivityTitle     string    `json:"activity_title"`
	ActivityStatus    string    `json:"activity_status"`
	ActivityStartTime time.Time `json:"activity_start_time"`
	ActivityEndTime   time.Time `json:"activity_end_time"`
}

type ConfirmationStatsResponse struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Declined  int64 `json:"declined"`
	Maybe     int64 `json:"maybe"`
}

type RemindersDispatchedResponse struct {
	Dispatched int `json:"dispatched"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func FromConfirmationModel(mdl m.AttendanceConfirmationModel) ConfirmationResponse {
	return ConfirmationResponse{
		AttendanceConfirmationID:         mdl.AttendanceConfirmationID,
		AttendanceConfirmationActivityID: mdl.AttendanceConfirmationActivityID,
		AttendanceConfirmationUserID:     mdl.AttendanceConfirmationUserID,
		AttendanceConfirmationStatus:     mdl.AttendanceConfirmationStatus,
		AttendanceConfirmationNotes:      mdl.AttendanceConfirmationNotes,
		AttendanceConfirmationCreatedAt:  mdl.AttendanceConfirmationCreatedAt,
		AttendanceConfirmationUpdatedAt:  mdl.AttendanceConfirmationUpdatedAt,
	}
}

func FromConfirmationModels(mdls []m.AttendanceConfirmationModel) []ConfirmationResponse {
	out := make([]ConfirmationResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, FromConfirmationModel(mdl))
	}
	return out
}
