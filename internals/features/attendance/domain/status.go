// Package domain holds the shared attendance vocabulary: status enums,
// typed domain errors, stat formulas, and period bucketing. Every
// attendance feature (confirmations, records, stats, reports) speaks
// these types instead of raw strings.
package domain

/* =========================================================
 * STATUS ENUMS
 * ========================================================= */

// RecordStatus is the classified outcome on an attendance record.
type RecordStatus string

const (
	RecordPresent    RecordStatus = "present"
	RecordLate       RecordStatus = "late"
	RecordEarlyLeave RecordStatus = "early_leave"
	RecordPartial    RecordStatus = "partial"
	RecordAbsent     RecordStatus = "absent"
	RecordExcused    RecordStatus = "excused"
	RecordNoShow     RecordStatus = "no_show"
)

// CountsAsPresent reports whether the status counts toward presence
// (attendance-rate numerator and the activity present counter).
func (s RecordStatus) CountsAsPresent() bool {
	switch s {
	case RecordPresent, RecordLate, RecordEarlyLeave, RecordPartial:
		return true
	}
	return false
}

func (s RecordStatus) Valid() bool {
	switch s {
	case RecordPresent, RecordLate, RecordEarlyLeave, RecordPartial,
		RecordAbsent, RecordExcused, RecordNoShow:
		return true
	}
	return false
}

// ConfirmationStatus is a participant's RSVP state for an activity.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
	ConfirmationDeclined  ConfirmationStatus = "declined"
	ConfirmationMaybe     ConfirmationStatus = "maybe"
)

func (s ConfirmationStatus) Valid() bool {
	switch s {
	case ConfirmationPending, ConfirmationConfirmed, ConfirmationDeclined, ConfirmationMaybe:
		return true
	}
	return false
}

// ActivityStatus mirrors the Activity Directory's lifecycle states.
// The engine only reads it, it never transitions an activity.
type ActivityStatus string

const (
	ActivityScheduled  ActivityStatus = "scheduled"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityCancelled  ActivityStatus = "cancelled"
)

func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityScheduled, ActivityInProgress, ActivityCompleted, ActivityCancelled:
		return true
	}
	return false
}

// ReportType selects one of the six report builders.
type ReportType string

const (
	ReportDaily              ReportType = "daily"
	ReportWeekly             ReportType = "weekly"
	ReportMonthly            ReportType = "monthly"
	ReportActivitySummary    ReportType = "activity_summary"
	ReportParticipantSummary ReportType = "participant_summary"
	ReportCustom             ReportType = "custom"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportMonthly,
		ReportActivitySummary, ReportParticipantSummary, ReportCustom:
		return true
	}
	return false
}
