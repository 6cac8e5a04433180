package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	m "relawanku_backend/internals/features/attendance/reports/model"
	"relawanku_backend/internals/features/attendance/reports/service"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type GenerateReportRequest struct {
	ReportType domain.ReportType `json:"report_type" validate:"required,oneof=daily weekly monthly activity_summary participant_summary custom"`

	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`

	// Hanya untuk report_type=custom.
	GroupBy string `json:"group_by" validate:"omitempty,oneof=day week month user"`

	IncludeUserDetails     bool `json:"include_user_details"`
	IncludeActivityDetails bool `json:"include_activity_details"`
}

type ListReportsRequest struct {
	ReportType *domain.ReportType `query:"report_type" validate:"omitempty,oneof=daily weekly monthly activity_summary participant_summary custom"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type ReportResponse struct {
	AttendanceReportID          uuid.UUID         `json:"attendance_report_id"`
	AttendanceReportActivityID  uuid.UUID         `json:"attendance_report_activity_id"`
	AttendanceReportGeneratedBy uuid.UUID         `json:"attendance_report_generated_by"`
	AttendanceReportType        domain.ReportType `json:"attendance_report_type"`
	AttendanceReportFilters     json.RawMessage   `json:"attendance_report_filters,omitempty"`
	AttendanceReportContent     json.RawMessage   `json:"attendance_report_content"`
	AttendanceReportGeneratedAt time.Time         `json:"attendance_report_generated_at"`
}

// ReportListItem meninggalkan content (payload besar) di list view.
type ReportListItem struct {
	AttendanceReportID          uuid.UUID         `json:"attendance_report_id"`
	AttendanceReportActivityID  uuid.UUID         `json:"attendance_report_activity_id"`
	AttendanceReportGeneratedBy uuid.UUID         `json:"attendance_report_generated_by"`
	AttendanceReportType        domain.ReportType `json:"attendance_report_type"`
	AttendanceReportGeneratedAt time.Time         `json:"attendance_report_generated_at"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r GenerateReportRequest) ToInput() service.GenerateInput {
	in := service.GenerateInput{
		ReportType:             r.ReportType,
		GroupBy:                r.GroupBy,
		IncludeUserDetails:     r.IncludeUserDetails,
		IncludeActivityDetails: r.IncludeActivityDetails,
	}
	if r.Date != nil {
		if t, err := time.Parse("2006-01-02", *r.Date); err == nil {
			in.Date = &t
		}
	}
	if r.StartDate != nil {
		if t, err := time.Parse("2006-01-02", *r.StartDate); err == nil {
			in.StartDate = &t
		}
	}
	if r.EndDate != nil {
		if t, err := time.Parse("2006-01-02", *r.EndDate); err == nil {
			e := t.Add(24*time.Hour - time.Nanosecond)
			in.EndDate = &e
		}
	}
	return in
}

func FromReportModel(mdl m.AttendanceReportModel) ReportResponse {
	return ReportResponse{
		AttendanceReportID:          mdl.AttendanceReportID,
		AttendanceReportActivityID:  mdl.AttendanceReportActivityID,
		AttendanceReportGeneratedBy: mdl.AttendanceReportGeneratedBy,
		AttendanceReportType:        mdl.AttendanceReportType,
		AttendanceReportFilters:     json.RawMessage(mdl.AttendanceReportFilters),
		AttendanceReportContent:     json.RawMessage(mdl.AttendanceReportContent),
		AttendanceReportGeneratedAt: mdl.AttendanceReportGeneratedAt,
	}
}

func FromReportModels(mdls []m.AttendanceReportModel) []ReportListItem {
	out := make([]ReportListItem, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, ReportListItem{
			AttendanceReportID:          mdl.AttendanceReportID,
			AttendanceReportActivityID:  mdl.AttendanceReportActivityID,
			AttendanceReportGeneratedBy: mdl.AttendanceReportGeneratedBy,
			AttendanceReportType:        mdl.AttendanceReportType,
			AttendanceReportGeneratedAt: mdl.AttendanceReportGeneratedAt,
		})
	}
	return out
}
