package dto

import (
	"time"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/stats/repository"
)

/* =========================================================
 * REQUESTS (query)
 * ========================================================= */

type FrequencyRequest struct {
	StartDate      *string                `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string                `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ActivityStatus *domain.ActivityStatus `query:"activity_status" validate:"omitempty,oneof=scheduled in_progress completed cancelled"`
}

type ByPeriodRequest struct {
	FrequencyRequest
	GroupBy domain.PeriodGroup `query:"group_by" validate:"required,oneof=day week month"`
}

type RankingRequest struct {
	FrequencyRequest
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

type AlertsRequest struct {
	Days              int `query:"days" validate:"omitempty,min=1,max=365"`
	MinAttendanceRate int `query:"min_attendance_rate" validate:"omitempty,min=1,max=100"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

// ActivityFrequencyResponse renames the total for the per-activity
// view: participants, not activities.
type ActivityFrequencyResponse struct {
	TotalParticipants int `json:"total_participants"`
	PresentCount      int `json:"present_count"`
	AbsentCount       int `json:"absent_count"`
	LateCount         int `json:"late_count"`
	EarlyLeaveCount   int `json:"early_leave_count"`
	ExcusedCount      int `json:"excused_count"`
	NoShowCount       int `json:"no_show_count"`
	AttendanceRate    int `json:"attendance_rate"`
	PunctualityRate   int `json:"punctuality_rate"`
}

func FromActivityStats(s domain.Stats) ActivityFrequencyResponse {
	return ActivityFrequencyResponse{
		TotalParticipants: s.TotalActivities,
		PresentCount:      s.PresentCount,
		AbsentCount:       s.AbsentCount,
		LateCount:         s.LateCount,
		EarlyLeaveCount:   s.EarlyLeaveCount,
		ExcusedCount:      s.ExcusedCount,
		NoShowCount:       s.NoShowCount,
		AttendanceRate:    s.AttendanceRate,
		PunctualityRate:   s.PunctualityRate,
	}
}

/* =========================================================
 * HELPERS
 * ========================================================= */

// ToRangeFilter turns the validated query into the reader filter.
func (r FrequencyRequest) ToRangeFilter() repository.RangeFilter {
	var f repository.RangeFilter
	if r.ActivityStatus != nil {
		f.ActivityStatus = *r.ActivityStatus
	}
	if r.StartDate != nil {
		if t, err := time.Parse("2006-01-02", *r.StartDate); err == nil {
			f.StartDate = &t
		}
	}
	if r.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *r.EndDate); err == nil {
			e := t.Add(24*time.Hour - time.Nanosecond)
			f.EndDate = &e
		}
	}
	return f
}
