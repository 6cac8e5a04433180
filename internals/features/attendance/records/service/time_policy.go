package service

import (
	"time"

	"relawanku_backend/internals/features/attendance/domain"
)

// TimePolicy turns an activity's scheduled window plus "now" into
// check-in eligibility and status classification. Pure; all thresholds
// come from configuration, never from call sites.
type TimePolicy struct {
	// CheckInLead: window opens this long before the scheduled start.
	CheckInLead time.Duration
	// LateGrace: a check-in later than start+grace classifies as late.
	LateGrace time.Duration
	// EarlyLeaveGate: a check-out earlier than end-gate reclassifies
	// the record as early_leave.
	EarlyLeaveGate time.Duration
}

// DefaultTimePolicy mirrors the documented deployment defaults
// (30/15/30 minutes).
func DefaultTimePolicy() TimePolicy {
	return TimePolicy{
		CheckInLead:    30 * time.Minute,
		LateGrace:      15 * time.Minute,
		EarlyLeaveGate: 30 * time.Minute,
	}
}

// WindowOpen / WindowClose bound the accepted check-in interval
// [start-lead, end].
func (p TimePolicy) WindowOpen(start time.Time) time.Time { return start.Add(-p.CheckInLead) }
func (p TimePolicy) WindowClose(end time.Time) time.Time  { return end }

// EvaluateCheckIn classifies a check-in at now against the scheduled
// window. Outside the window it returns an OutOfWindowError telling
// the caller which side was missed.
func (p TimePolicy) EvaluateCheckIn(start, end, now time.Time) (domain.RecordStatus, *domain.OutOfWindowError) {
	if now.Before(p.WindowOpen(start)) {
		return "", domain.TooEarly()
	}
	if now.After(p.WindowClose(end)) {
		return "", domain.TooLate()
	}
	if now.After(start.Add(p.LateGrace)) {
		return domain.RecordLate, nil
	}
	return domain.RecordPresent, nil
}

// IsEarlyLeave reports whether a check-out at now counts as leaving
// early (strictly before end-gate). A later check-out never downgrades
// the check-in classification.
func (p TimePolicy) IsEarlyLeave(end, now time.Time) bool {
	return now.Before(end.Add(-p.EarlyLeaveGate))
}
